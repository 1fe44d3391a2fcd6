package repository

import (
	"github.com/user/moviemate/internal/model"
	"github.com/user/moviemate/internal/storage"
)

type MovieRepository struct {
	store storage.Store
}

func NewMovieRepository(store storage.Store) *MovieRepository {
	return &MovieRepository{store: store}
}

// FindByID 根据内部 ID 查找电影，未找到返回 nil
func (r *MovieRepository) FindByID(id string) (*model.Movie, error) {
	rec, err := r.store.GetByID(moviesCollection, id)
	if err != nil || rec == nil {
		return nil, err
	}
	var movie model.Movie
	if err := storage.DecodeRecord(rec, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// SaveIfAbsent 当内部 ID 尚不存在时写入电影记录。
// 电影记录创建后不再更新，收藏中的快照也不跟随变化。
func (r *MovieRepository) SaveIfAbsent(m *model.Movie) error {
	existing, err := r.store.GetByID(moviesCollection, m.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	rec, err := storage.ToRecord(m)
	if err != nil {
		return err
	}
	return r.store.Create(moviesCollection, rec)
}
