package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviemate/internal/model"
	"github.com/user/moviemate/internal/utils"
)

type createUserRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    *string `json:"email"`
}

// CreateUser 创建用户，用户名在存储内唯一
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "username is required")
		return
	}

	existing, err := h.Repos.User.FindByUsername(req.Username)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.BadRequest(c, "Username already exists")
		return
	}

	user := model.NewUser(req.Username, req.Email)
	if err := h.Repos.User.Create(&user); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetUser 按 ID 获取用户
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Repos.User.FindByID(c.Param("id"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetUserByUsername 按用户名获取用户
func (h *Handler) GetUserByUsername(c *gin.Context) {
	user, err := h.Repos.User.FindByUsername(c.Param("username"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
