package model

import (
	"time"
)

// Movie 电影记录（TMDB 信息 + 派生字段）
type Movie struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title,omitempty"`
	Overview      string   `json:"overview,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty"`
	PosterPath    string   `json:"poster_path,omitempty"`
	BackdropPath  string   `json:"backdrop_path,omitempty"`
	VoteAverage   float64  `json:"vote_average"`
	VoteCount     int      `json:"vote_count"`
	Genres        []string `json:"genres"`
	Runtime       int      `json:"runtime,omitempty"`
	TMDBID        int      `json:"tmdb_id"`
	IMDbID        string   `json:"imdb_id,omitempty"`
	// IMDbRating 派生评分，数字字符串或 "N/A"，同一影片多次抓取的值不保证一致
	IMDbRating string `json:"imdb_rating"`
}

// UserMovie 用户收藏记录，内嵌添加时刻的电影快照
type UserMovie struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	Movie   Movie     `json:"movie"`
	AddedAt time.Time `json:"added_at"`
	Rating  *float64  `json:"rating"`
	Watched bool      `json:"watched"`
	Notes   *string   `json:"notes"`
}

// NewMovie 基于原型创建电影记录，分配稳定 ID 并补齐默认字段
func NewMovie(m Movie) Movie {
	m.ID = GenerateID()
	if m.Genres == nil {
		m.Genres = []string{}
	}
	return m
}

// NewUserMovie 创建收藏记录，快照传入的电影
func NewUserMovie(userID string, movie Movie) UserMovie {
	return UserMovie{
		ID:      GenerateID(),
		UserID:  userID,
		Movie:   movie,
		AddedAt: time.Now(),
		Watched: false,
	}
}
