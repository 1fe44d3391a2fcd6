package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/moviemate/internal/utils"
)

// ServeFrontend 兜底路由：API 下的未知路径回 404 JSON，
// 其余路径从前端目录返回静态文件
func (h *Handler) ServeFrontend(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") {
		utils.NotFound(c, "Not found")
		return
	}

	if path == "/" {
		path = "/index.html"
	}

	// Clean 掉 .. 之后再拼接，防止越出前端目录
	full := filepath.Join(h.Config.FrontendDir, filepath.Clean("/"+path))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(full)
}
