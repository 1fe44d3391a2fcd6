package repository

import (
	"fmt"

	"github.com/user/moviemate/internal/config"
	"github.com/user/moviemate/internal/storage"
)

// 存储集合名
const (
	usersCollection      = "users"
	moviesCollection     = "movies"
	userMoviesCollection = "user_movies"
)

// InitStore 按配置初始化记录存储
func InitStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "postgres":
		return storage.NewGormStore(cfg.DatabaseURL)
	case "json", "":
		return storage.NewJSONStore(cfg.DataDir, usersCollection, moviesCollection, userMoviesCollection)
	default:
		return nil, fmt.Errorf("未知的存储驱动: %s", cfg.StorageDriver)
	}
}

// Repositories 仓库集合
type Repositories struct {
	Store     storage.Store
	User      *UserRepository
	Movie     *MovieRepository
	UserMovie *UserMovieRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(store storage.Store) *Repositories {
	return &Repositories{
		Store:     store,
		User:      NewUserRepository(store),
		Movie:     NewMovieRepository(store),
		UserMovie: NewUserMovieRepository(store),
	}
}
