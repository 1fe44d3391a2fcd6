package service

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/user/moviemate/internal/model"
	"github.com/user/moviemate/internal/repository"
	"github.com/user/moviemate/internal/storage"
)

func newRecommendService(t *testing.T, tmdb *TMDBService) (*RecommendService, *repository.Repositories) {
	t.Helper()
	repos := repository.NewRepositories(storage.NewMemStore())
	svc := NewRecommendService(tmdb, NewEnrichService(tmdb), repos.UserMovie)
	return svc, repos
}

func collect(t *testing.T, repos *repository.Repositories, userID string, tmdbID int) {
	t.Helper()
	movie := model.NewMovie(model.Movie{Title: "t", TMDBID: tmdbID})
	um := model.NewUserMovie(userID, movie)
	if err := repos.UserMovie.Create(&um); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestRecommendColdStart(t *testing.T) {
	tmdb := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/movie/top_rated":
			// 高分榜返回 12 条，推荐只取前 10
			resp := listResponse{Page: 1}
			for i := 0; i < 12; i++ {
				resp.Results = append(resp.Results, CatalogItem{
					ID:          401 + i,
					Title:       "top",
					Overview:    "описание",
					VoteAverage: 8.4,
					VoteCount:   2000,
				})
			}
			writeList(w, resp)
		case strings.HasPrefix(r.URL.Path, "/movie/"):
			writeDetail(w, MovieDetail{ID: detailID(r.URL.Path), Overview: "детали"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	svc, _ := newRecommendService(t, tmdb)

	movies := svc.ForUser(context.Background(), "u1", "ru")
	if len(movies) != 10 {
		t.Fatalf("冷启动推荐条数 = %d, want 10", len(movies))
	}
	for _, m := range movies {
		if m.TMDBID < 401 || m.TMDBID > 412 {
			t.Errorf("推荐里出现不在高分榜中的条目: tmdb_id=%d", m.TMDBID)
		}
	}
}

func TestRecommendColdStartUpstreamDown(t *testing.T) {
	svc, _ := newRecommendService(t, deadGateway(t))
	movies := svc.ForUser(context.Background(), "u1", "ru")
	if movies == nil || len(movies) != 0 {
		t.Errorf("上游不可达时应降级为空列表, got %v", movies)
	}
}

func TestRecommendByGenres(t *testing.T) {
	// 收藏里剧情出现 2 次，喜剧和动作各 1 次，前两名应以剧情领头
	genresByID := map[int][]Genre{
		301: {{ID: 18, Name: "драма"}, {ID: 35, Name: "комедия"}},
		302: {{ID: 18, Name: "драма"}, {ID: 28, Name: "боевик"}},
	}

	var mu sync.Mutex
	var discoverQueries []map[string]string

	tmdb := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/discover/movie":
			q := r.URL.Query()
			mu.Lock()
			discoverQueries = append(discoverQueries, map[string]string{
				"with_genres":    q.Get("with_genres"),
				"sort_by":        q.Get("sort_by"),
				"vote_count.gte": q.Get("vote_count.gte"),
			})
			mu.Unlock()
			resp := listResponse{Page: 1}
			for i := 0; i < 16; i++ {
				resp.Results = append(resp.Results, CatalogItem{
					ID:          501 + i,
					Title:       "found",
					Overview:    "описание",
					VoteAverage: 8.1,
					VoteCount:   3000,
				})
			}
			writeList(w, resp)
		case strings.HasPrefix(r.URL.Path, "/movie/"):
			id := detailID(r.URL.Path)
			writeDetail(w, MovieDetail{ID: id, Overview: "детали", Genres: genresByID[id]})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	svc, repos := newRecommendService(t, tmdb)
	collect(t, repos, "u1", 301)
	collect(t, repos, "u1", 302)

	movies := svc.ForUser(context.Background(), "u1", "ru")
	if len(movies) != 15 {
		t.Fatalf("推荐条数 = %d, want 15", len(movies))
	}

	mu.Lock()
	defer mu.Unlock()
	if len(discoverQueries) != 1 {
		t.Fatalf("发现接口应只调用一次, got %d", len(discoverQueries))
	}
	q := discoverQueries[0]
	// 出现最多的风格排在前面，次名同分不限顺序
	if !strings.HasPrefix(q["with_genres"], "18") {
		t.Errorf("with_genres = %q, 剧情应排在首位", q["with_genres"])
	}
	if ids := strings.Split(q["with_genres"], ","); len(ids) != 2 {
		t.Errorf("with_genres = %q, 应只带两个风格", q["with_genres"])
	}
	if q["sort_by"] != "vote_average.desc" {
		t.Errorf("sort_by = %q", q["sort_by"])
	}
	if q["vote_count.gte"] != "1000" {
		t.Errorf("vote_count.gte = %q", q["vote_count.gte"])
	}
}

func TestRecommendAllGenreLookupsFail(t *testing.T) {
	var mu sync.Mutex
	discoverCalled := false

	tmdb := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/discover/movie" {
			mu.Lock()
			discoverCalled = true
			mu.Unlock()
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc, repos := newRecommendService(t, tmdb)
	collect(t, repos, "u1", 601)
	collect(t, repos, "u1", 602)

	movies := svc.ForUser(context.Background(), "u1", "ru")
	if len(movies) != 0 {
		t.Errorf("风格统计全部失败时应返回空列表, got %d 条", len(movies))
	}
	mu.Lock()
	defer mu.Unlock()
	if discoverCalled {
		t.Error("风格统计全部失败时不应调用发现接口")
	}
}

func TestRecommendUsesRecentCollection(t *testing.T) {
	// 收藏 7 条，前 2 条的风格不应参与统计
	genresByID := map[int][]Genre{}
	for id := 701; id <= 702; id++ {
		genresByID[id] = []Genre{{ID: 99, Name: "старый"}}
	}
	for id := 703; id <= 707; id++ {
		genresByID[id] = []Genre{{ID: 18, Name: "драма"}}
	}

	var mu sync.Mutex
	detailCalls := map[int]bool{}

	tmdb := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/discover/movie":
			q := r.URL.Query()
			if strings.Contains(q.Get("with_genres"), "99") {
				t.Errorf("发现参数不应包含早期收藏的风格: %q", q.Get("with_genres"))
			}
			writeList(w, listResponse{Page: 1})
		case strings.HasPrefix(r.URL.Path, "/movie/"):
			id := detailID(r.URL.Path)
			mu.Lock()
			detailCalls[id] = true
			mu.Unlock()
			writeDetail(w, MovieDetail{ID: id, Genres: genresByID[id]})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	svc, repos := newRecommendService(t, tmdb)
	for id := 701; id <= 707; id++ {
		collect(t, repos, "u1", id)
	}

	svc.ForUser(context.Background(), "u1", "ru")

	mu.Lock()
	defer mu.Unlock()
	for id := 701; id <= 702; id++ {
		if detailCalls[id] {
			t.Errorf("早期收藏 %d 不应参与风格统计", id)
		}
	}
	for id := 703; id <= 707; id++ {
		if !detailCalls[id] {
			t.Errorf("最近收藏 %d 应参与风格统计", id)
		}
	}
}
