package service

import (
	"context"
	"log"
	"sort"

	"github.com/user/moviemate/internal/model"
	"github.com/user/moviemate/internal/repository"
)

// 推荐策略的固定参数
const (
	recentSampleSize  = 5  // 参与风格统计的最近收藏条数
	topGenreCount     = 2  // 取占比最高的风格数
	coldStartLimit    = 10 // 冷启动时返回的高分影片数
	discoverLimit     = 15 // 发现结果上限
	coldStartWorkers  = 5
	recommendWorkers  = 10
)

// RecommendService 基于收藏风格的推荐服务
type RecommendService struct {
	tmdb       *TMDBService
	enrich     *EnrichService
	userMovies *repository.UserMovieRepository
}

// NewRecommendService 创建推荐服务
func NewRecommendService(tmdb *TMDBService, enrich *EnrichService, userMovies *repository.UserMovieRepository) *RecommendService {
	return &RecommendService{
		tmdb:       tmdb,
		enrich:     enrich,
		userMovies: userMovies,
	}
}

// ForUser 为用户生成推荐。任何上游失败都降级为空列表，不报错。
// 收藏为空时退回高分榜；否则统计最近收藏的风格占比，
// 取前两名去发现接口找高分影片。
func (s *RecommendService) ForUser(ctx context.Context, userID, language string) []model.Movie {
	collection, err := s.userMovies.ListByUser(userID)
	if err != nil {
		log.Printf("[Recommend] 读取收藏失败 (UserID: %s): %v", userID, err)
		collection = nil
	}

	// 冷启动：没有收藏就推高分榜
	if len(collection) == 0 {
		items, err := s.tmdb.TopRated(ctx, language)
		if err != nil {
			log.Printf("[Recommend] 获取高分榜失败: %v", err)
			return []model.Movie{}
		}
		if len(items) > coldStartLimit {
			items = items[:coldStartLimit]
		}
		return s.enrich.EnrichAll(ctx, items, language, coldStartWorkers)
	}

	genreIDs := s.tallyGenres(ctx, collection)
	if len(genreIDs) == 0 {
		// 所有风格查询都失败，静默降级
		return []model.Movie{}
	}

	items, err := s.tmdb.Discover(ctx, language, genreIDs)
	if err != nil {
		log.Printf("[Recommend] 发现影片失败: %v", err)
		return []model.Movie{}
	}
	if len(items) > discoverLimit {
		items = items[:discoverLimit]
	}
	return s.enrich.EnrichAll(ctx, items, language, recommendWorkers)
}

// tallyGenres 统计最近收藏的风格出现次数，返回出现最多的风格 ID。
// 单条查询失败直接跳过；同分风格的先后顺序不作保证。
func (s *RecommendService) tallyGenres(ctx context.Context, collection []model.UserMovie) []int {
	recent := collection
	if len(recent) > recentSampleSize {
		recent = recent[len(recent)-recentSampleSize:]
	}

	counts := map[int]int{}
	for _, um := range recent {
		if um.Movie.TMDBID == 0 {
			continue
		}
		detail, err := s.tmdb.Detail(ctx, um.Movie.TMDBID, "", detailFallbackTimeout)
		if err != nil {
			continue
		}
		for _, g := range detail.Genres {
			if g.ID != 0 {
				counts[g.ID]++
			}
		}
	}

	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return counts[ids[i]] > counts[ids[j]]
	})
	if len(ids) > topGenreCount {
		ids = ids[:topGenreCount]
	}
	return ids
}
