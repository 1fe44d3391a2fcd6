package handler

import (
	"time"

	"github.com/user/moviemate/internal/config"
	"github.com/user/moviemate/internal/model"
	"github.com/user/moviemate/internal/repository"
	"github.com/user/moviemate/internal/service"
	"github.com/user/moviemate/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos     *repository.Repositories
	Config    *config.Config
	TMDB      *service.TMDBService
	Enrich    *service.EnrichService
	Recommend *service.RecommendService

	// 补全后的搜索/热门结果缓存，收藏和推荐不走缓存
	resultCache *utils.SearchCache[[]model.Movie]
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	tmdb := service.NewTMDBService(cfg)
	enrich := service.NewEnrichService(tmdb)
	recommend := service.NewRecommendService(tmdb, enrich, repos.UserMovie)

	return &Handler{
		Repos:       repos,
		Config:      cfg,
		TMDB:        tmdb,
		Enrich:      enrich,
		Recommend:   recommend,
		resultCache: utils.NewSearchCache[[]model.Movie](256, 10*time.Minute),
	}
}

// language 读取请求语言参数，缺省用配置的默认语言
func (h *Handler) language(queryLanguage string) string {
	if queryLanguage != "" {
		return queryLanguage
	}
	return h.Config.DefaultLanguage
}
