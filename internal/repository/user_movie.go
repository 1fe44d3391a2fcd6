package repository

import (
	"github.com/user/moviemate/internal/model"
	"github.com/user/moviemate/internal/storage"
)

type UserMovieRepository struct {
	store storage.Store
}

func NewUserMovieRepository(store storage.Store) *UserMovieRepository {
	return &UserMovieRepository{store: store}
}

// ListByUser 返回用户的全部收藏，按添加顺序
func (r *UserMovieRepository) ListByUser(userID string) ([]model.UserMovie, error) {
	recs, err := r.store.Query(userMoviesCollection, map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	list := make([]model.UserMovie, 0, len(recs))
	for _, rec := range recs {
		var um model.UserMovie
		if err := storage.DecodeRecord(rec, &um); err != nil {
			continue
		}
		list = append(list, um)
	}
	return list, nil
}

// FindByMovieID 按内嵌电影的内部 ID 查找收藏记录，未找到返回 nil
func (r *UserMovieRepository) FindByMovieID(userID, movieID string) (*model.UserMovie, error) {
	list, err := r.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Movie.ID == movieID {
			return &list[i], nil
		}
	}
	return nil, nil
}

// ContainsTMDBID 判断用户收藏里是否已有该 TMDB 影片
func (r *UserMovieRepository) ContainsTMDBID(userID string, tmdbID int) (bool, error) {
	if tmdbID == 0 {
		return false, nil
	}
	list, err := r.ListByUser(userID)
	if err != nil {
		return false, err
	}
	for _, um := range list {
		if um.Movie.TMDBID == tmdbID {
			return true, nil
		}
	}
	return false, nil
}

// Create 保存收藏记录
func (r *UserMovieRepository) Create(um *model.UserMovie) error {
	rec, err := storage.ToRecord(um)
	if err != nil {
		return err
	}
	return r.store.Create(userMoviesCollection, rec)
}

// Update 整体替换收藏记录
func (r *UserMovieRepository) Update(um *model.UserMovie) error {
	rec, err := storage.ToRecord(um)
	if err != nil {
		return err
	}
	_, err = r.store.Update(userMoviesCollection, um.ID, rec)
	return err
}

// Delete 按收藏记录 ID 删除，返回是否找到
func (r *UserMovieRepository) Delete(id string) (bool, error) {
	return r.store.Delete(userMoviesCollection, id)
}
