package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/moviemate/internal/model"
	"github.com/user/moviemate/internal/service"
	"github.com/user/moviemate/internal/utils"
)

// 单次请求参与补全的摘要数量上限
const (
	searchResultCap  = 20
	popularResultCap = 100
	popularMaxPages  = 5
)

var validate = validator.New()

// SearchMovies 搜索目录并补全详情。关键词为空退回热门榜。
// 上游失败一律降级为空结果，不返回 5xx。
func (h *Handler) SearchMovies(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		h.PopularMovies(c)
		return
	}
	language := h.language(c.Query("language"))

	cacheKey := "search:" + language + ":" + query
	if movies, ok := h.resultCache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"results": movies})
		return
	}

	items, err := h.TMDB.Search(c.Request.Context(), query, language)
	if err != nil {
		log.Printf("[Movies] 搜索失败: %v", err)
		c.JSON(http.StatusOK, gin.H{"results": []model.Movie{}})
		return
	}
	if len(items) > searchResultCap {
		items = items[:searchResultCap]
	}

	movies := h.Enrich.EnrichAll(c.Request.Context(), items, language, 10)
	h.resultCache.Set(cacheKey, movies)

	c.JSON(http.StatusOK, gin.H{"results": movies})
}

// PopularMovies 聚合最多 5 页热门榜（上限 100 条）后补全详情
func (h *Handler) PopularMovies(c *gin.Context) {
	language := h.language(c.Query("language"))

	cacheKey := "popular:" + language
	if movies, ok := h.resultCache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"results": movies})
		return
	}

	var all []service.CatalogItem
	for page := 1; page <= popularMaxPages; page++ {
		items, err := h.TMDB.Popular(c.Request.Context(), language, page)
		if err != nil {
			log.Printf("[Movies] 获取热门榜失败 (page %d): %v", page, err)
			c.JSON(http.StatusOK, gin.H{"results": []model.Movie{}})
			return
		}
		all = append(all, items...)
		if len(all) >= popularResultCap {
			break
		}
	}
	if len(all) > popularResultCap {
		all = all[:popularResultCap]
	}

	movies := h.Enrich.EnrichAll(c.Request.Context(), all, language, 20)
	h.resultCache.Set(cacheKey, movies)

	c.JSON(http.StatusOK, gin.H{"results": movies})
}

// GetCollection 返回用户的收藏列表
func (h *Handler) GetCollection(c *gin.Context) {
	list, err := h.Repos.UserMovie.ListByUser(c.Param("user_id"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": list})
}

type addToCollectionRequest struct {
	UserID string       `json:"user_id" binding:"required"`
	Movie  *model.Movie `json:"movie" binding:"required"`
}

// AddToCollection 把电影加入用户收藏。
// 同一 TMDB 影片在一个用户的收藏里最多出现一次。
func (h *Handler) AddToCollection(c *gin.Context) {
	var req addToCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing user_id or movie")
		return
	}

	duplicate, err := h.Repos.UserMovie.ContainsTMDBID(req.UserID, req.Movie.TMDBID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if duplicate {
		utils.BadRequest(c, "Movie already in collection")
		return
	}

	// 第一次入库时补发内部 ID，之后不再变化
	if req.Movie.ID == "" {
		*req.Movie = model.NewMovie(*req.Movie)
	}
	if err := h.Repos.Movie.SaveIfAbsent(req.Movie); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	userMovie := model.NewUserMovie(req.UserID, *req.Movie)
	if err := h.Repos.UserMovie.Create(&userMovie); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_movie": userMovie})
}

// RemoveFromCollection 按内嵌电影的内部 ID 从收藏中移除
func (h *Handler) RemoveFromCollection(c *gin.Context) {
	userID := c.Param("user_id")
	movieID := c.Param("movie_id")

	record, err := h.Repos.UserMovie.FindByMovieID(userID, movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if record == nil {
		utils.NotFound(c, "Movie not found")
		return
	}

	if _, err := h.Repos.UserMovie.Delete(record.ID); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed successfully"})
}

type updateCollectionRequest struct {
	Watched *bool    `json:"watched"`
	Rating  *float64 `json:"rating" validate:"omitempty,min=0,max=10"`
	Notes   *string  `json:"notes"`
}

// UpdateCollectionEntry 更新收藏条目的已看/评分/笔记，只改传入的字段
func (h *Handler) UpdateCollectionEntry(c *gin.Context) {
	userID := c.Param("user_id")
	movieID := c.Param("movie_id")

	var req updateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.BadRequest(c, "Rating must be between 0 and 10")
		return
	}

	record, err := h.Repos.UserMovie.FindByMovieID(userID, movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if record == nil {
		utils.NotFound(c, "Movie not found")
		return
	}

	if req.Watched != nil {
		record.Watched = *req.Watched
	}
	if req.Rating != nil {
		record.Rating = req.Rating
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := h.Repos.UserMovie.Update(record); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_movie": record})
}
