package service

import (
	"context"
	"log"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/user/moviemate/internal/model"
)

// 描述回退链的固定值
const (
	fallbackLanguage    = "en-US"
	overviewPlaceholder = "Описание отсутствует"
)

// EnrichService 详情补全管道。把一批影片摘要并发补全成完整的
// 电影记录，单条失败静默丢弃，整批永远不向调用方报错。
type EnrichService struct {
	tmdb *TMDBService
}

// NewEnrichService 创建补全管道
func NewEnrichService(tmdb *TMDBService) *EnrichService {
	return &EnrichService{tmdb: tmdb}
}

// EnrichAll 并发补全一批影片摘要。workers 限制同时在途的详情请求数。
// 结果按完成顺序收集，不保证与输入顺序一致。
// 批次一旦提交就全部跑完，没有中途取消。
func (s *EnrichService) EnrichAll(ctx context.Context, items []CatalogItem, language string, workers int) []model.Movie {
	if len(items) == 0 {
		return []model.Movie{}
	}
	if workers <= 0 {
		workers = 10
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan CatalogItem)
	movies := make([]model.Movie, 0, len(items))

	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				movie, err := s.enrichOne(ctx, item, language)
				if err != nil {
					// 单条失败只丢弃该条，不影响整批
					log.Printf("[Enrich] 补全失败 (TMDB ID: %d): %v", item.ID, err)
					continue
				}
				mu.Lock()
				movies = append(movies, *movie)
				mu.Unlock()
			}
		}()
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)
	wg.Wait()

	return movies
}

// enrichOne 补全单条摘要：取详情、做描述回退、组装电影记录
func (s *EnrichService) enrichOne(ctx context.Context, item CatalogItem, language string) (*model.Movie, error) {
	detail, err := s.tmdb.Detail(ctx, item.ID, language, detailTimeout)
	if err != nil {
		return nil, err
	}

	// 描述回退链：本地化详情 → 摘要自带 → 英文详情 → 占位文本
	overview := detail.Overview
	if overview == "" {
		overview = item.Overview
	}
	if strings.TrimSpace(overview) == "" {
		overview = overviewPlaceholder
		if en, err := s.tmdb.Detail(ctx, item.ID, fallbackLanguage, detailFallbackTimeout); err == nil && en.Overview != "" {
			overview = en.Overview
		}
	}

	genres := make([]string, 0, len(detail.Genres))
	for _, g := range detail.Genres {
		genres = append(genres, g.Name)
	}

	movie := model.NewMovie(model.Movie{
		Title:         item.Title,
		OriginalTitle: item.OriginalTitle,
		Overview:      overview,
		ReleaseDate:   item.ReleaseDate,
		PosterPath:    item.PosterPath,
		BackdropPath:  item.BackdropPath,
		VoteAverage:   item.VoteAverage,
		VoteCount:     item.VoteCount,
		Genres:        genres,
		Runtime:       detail.Runtime,
		TMDBID:        item.ID,
		IMDbID:        detail.IMDbID,
	})
	movie.IMDbRating = GenerateIMDbRating(item.VoteAverage)

	return &movie, nil
}

// GenerateIMDbRating 基于 TMDB 评分生成 IMDb 风格评分：
// 加上 [-0.5, +0.5] 的随机偏移，截断到 [1.0, 10.0]，保留一位小数。
// 评分缺失或为 0 时返回 "N/A"。该值刻意不保证多次生成一致。
func GenerateIMDbRating(voteAverage float64) string {
	if voteAverage == 0 {
		return "N/A"
	}

	variation := rand.Float64() - 0.5
	rating := voteAverage + variation

	rating = math.Max(1.0, math.Min(10.0, rating))
	rating = math.Round(rating*10) / 10

	return strconv.FormatFloat(rating, 'f', 1, 64)
}
