package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/user/moviemate/internal/config"
	"github.com/user/moviemate/internal/utils"
	"golang.org/x/sync/singleflight"
)

// 上游调用超时。详情接口在描述回退和风格统计时用更短的超时。
const (
	listTimeout           = 5 * time.Second
	detailTimeout         = 5 * time.Second
	detailFallbackTimeout = 3 * time.Second
)

// CatalogItem 上游搜索/榜单返回的影片摘要
type CatalogItem struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
}

// Genre 上游风格条目
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail 上游影片详情
type MovieDetail struct {
	ID       int     `json:"id"`
	Overview string  `json:"overview"`
	Runtime  int     `json:"runtime"`
	IMDbID   string  `json:"imdb_id"`
	Genres   []Genre `json:"genres"`
}

type listResponse struct {
	Page         int           `json:"page"`
	Results      []CatalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// TMDBService TMDB 目录网关。只做请求/响应映射，
// 不重试不熔断，失败直接抛给调用方决定回退策略。
type TMDBService struct {
	cfg         *config.Config
	client      *utils.HTTPClient
	detailCache *cache.Cache
	sf          singleflight.Group
}

// NewTMDBService 创建目录网关
func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		cfg:    cfg,
		client: utils.NewHTTPClient(10 * time.Second),
		// 详情接口在补全和推荐里会被反复命中，短期缓存即可大幅减少请求
		detailCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// buildURL 拼接上游地址，附加固定凭证
func (s *TMDBService) buildURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", s.cfg.TMDBAPIKey)
	return s.cfg.TMDBBaseURL + path + "?" + params.Encode()
}

// Search 按关键词搜索影片
func (s *TMDBService) Search(ctx context.Context, query, language string) ([]CatalogItem, error) {
	reqCtx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("query", query)
	params.Set("language", language)

	var resp listResponse
	if err := s.client.GetJSON(reqCtx, s.buildURL("/search/movie", params), &resp); err != nil {
		return nil, fmt.Errorf("搜索影片失败: %w", err)
	}
	return resp.Results, nil
}

// Popular 获取热门影片的一页
func (s *TMDBService) Popular(ctx context.Context, language string, page int) ([]CatalogItem, error) {
	reqCtx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("language", language)
	params.Set("page", strconv.Itoa(page))

	var resp listResponse
	if err := s.client.GetJSON(reqCtx, s.buildURL("/movie/popular", params), &resp); err != nil {
		return nil, fmt.Errorf("获取热门影片失败: %w", err)
	}
	return resp.Results, nil
}

// TopRated 获取高分榜第一页
func (s *TMDBService) TopRated(ctx context.Context, language string) ([]CatalogItem, error) {
	reqCtx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("language", language)
	params.Set("page", "1")

	var resp listResponse
	if err := s.client.GetJSON(reqCtx, s.buildURL("/movie/top_rated", params), &resp); err != nil {
		return nil, fmt.Errorf("获取高分影片失败: %w", err)
	}
	return resp.Results, nil
}

// Discover 按风格发现高分影片，只取第一页，
// 按评分降序且要求至少 1000 个投票
func (s *TMDBService) Discover(ctx context.Context, language string, genreIDs []int) ([]CatalogItem, error) {
	reqCtx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	ids := make([]string, 0, len(genreIDs))
	for _, id := range genreIDs {
		ids = append(ids, strconv.Itoa(id))
	}

	params := url.Values{}
	params.Set("language", language)
	params.Set("sort_by", "vote_average.desc")
	params.Set("with_genres", strings.Join(ids, ","))
	params.Set("vote_count.gte", "1000")
	params.Set("page", "1")

	var resp listResponse
	if err := s.client.GetJSON(reqCtx, s.buildURL("/discover/movie", params), &resp); err != nil {
		return nil, fmt.Errorf("发现影片失败: %w", err)
	}
	return resp.Results, nil
}

// Detail 获取影片详情。language 为空时不带语言参数。
// 结果短期缓存，并用 singleflight 合并并发的相同请求。
func (s *TMDBService) Detail(ctx context.Context, tmdbID int, language string, timeout time.Duration) (*MovieDetail, error) {
	key := fmt.Sprintf("detail:%d:%s", tmdbID, language)
	if cached, ok := s.detailCache.Get(key); ok {
		return cached.(*MovieDetail), nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		params := url.Values{}
		if language != "" {
			params.Set("language", language)
		}

		var detail MovieDetail
		if err := s.client.GetJSON(reqCtx, s.buildURL(fmt.Sprintf("/movie/%d", tmdbID), params), &detail); err != nil {
			return nil, fmt.Errorf("获取影片详情失败 (TMDB ID: %d): %w", tmdbID, err)
		}
		s.detailCache.Set(key, &detail, cache.DefaultExpiration)
		return &detail, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*MovieDetail), nil
}
