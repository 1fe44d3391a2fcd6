package repository

import (
	"github.com/user/moviemate/internal/model"
	"github.com/user/moviemate/internal/storage"
)

type UserRepository struct {
	store storage.Store
}

func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create 保存用户
func (r *UserRepository) Create(u *model.User) error {
	rec, err := storage.ToRecord(u)
	if err != nil {
		return err
	}
	return r.store.Create(usersCollection, rec)
}

// FindByID 根据 ID 查找用户，未找到返回 nil
func (r *UserRepository) FindByID(id string) (*model.User, error) {
	rec, err := r.store.GetByID(usersCollection, id)
	if err != nil || rec == nil {
		return nil, err
	}
	var user model.User
	if err := storage.DecodeRecord(rec, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername 根据用户名查找用户，未找到返回 nil
func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	recs, err := r.store.Query(usersCollection, map[string]any{"username": username})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	var user model.User
	if err := storage.DecodeRecord(recs[0], &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Count 用户总数
func (r *UserRepository) Count() (int, error) {
	recs, err := r.store.GetAll(usersCollection)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}
