package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviemate/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ==================== 用户 ====================
		users := api.Group("/users")
		{
			users.POST("", h.CreateUser)
			users.GET("/username/:username", h.GetUserByUsername)
			users.GET("/:id", h.GetUser)
		}

		// ==================== 影片与收藏 ====================
		movies := api.Group("/movies")
		{
			movies.GET("/search", h.SearchMovies)
			movies.GET("/popular", h.PopularMovies)
			movies.GET("/collection/:user_id", h.GetCollection)
			movies.POST("/collection", h.AddToCollection)
			movies.DELETE("/collection/:user_id/:movie_id", h.RemoveFromCollection)
			movies.PATCH("/collection/:user_id/:movie_id", h.UpdateCollectionEntry)
		}

		// ==================== 推荐 ====================
		api.GET("/recommendations/:user_id", h.Recommendations)
	}

	// 其余路径交给前端静态文件
	r.NoRoute(h.ServeFrontend)
}
