package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recommendations 基于收藏风格的推荐，失败时降级为空列表
func (h *Handler) Recommendations(c *gin.Context) {
	userID := c.Param("user_id")
	language := h.language(c.Query("language"))

	movies := h.Recommend.ForUser(c.Request.Context(), userID, language)
	c.JSON(http.StatusOK, gin.H{"recommendations": movies})
}
