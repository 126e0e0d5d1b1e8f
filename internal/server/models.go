package server

import (
	"time"

	"moviedeck/internal/domain"
	"moviedeck/internal/pkg/strlist"
)

type userRow struct {
	ID           string `gorm:"primaryKey;column:id"`
	Username     string `gorm:"column:username;uniqueIndex"`
	Email        string `gorm:"column:email"`
	PasswordHash string `gorm:"column:password_hash"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (u userRow) toDomain() *domain.User {
	return &domain.User{ID: u.ID, Username: u.Username, Email: u.Email}
}

type movieRow struct {
	ID             string  `gorm:"primaryKey;column:id"`
	OwnerID        *string `gorm:"column:owner_id;index"`
	OmdbID         string  `gorm:"column:omdb_id"`
	Title          string  `gorm:"column:title;index"`
	Year           int     `gorm:"column:year"`
	RuntimeMinutes int     `gorm:"column:runtime_minutes"`
	Genre          string  `gorm:"column:genre"`
	Director       string  `gorm:"column:director"`
	Poster         string  `gorm:"column:poster"`
	Source         string  `gorm:"column:source;index"`
	CreatedAt      time.Time
}

func (movieRow) TableName() string { return "movies" }

func (m movieRow) toDomain() domain.Movie {
	return domain.Movie{
		ID:             m.ID,
		OmdbID:         m.OmdbID,
		Title:          m.Title,
		Year:           m.Year,
		RuntimeMinutes: m.RuntimeMinutes,
		Genre:          strlist.FromString(m.Genre),
		Director:       strlist.FromString(m.Director),
		Poster:         m.Poster,
		Source:         domain.MovieSource(m.Source),
	}
}

type favoriteRow struct {
	UserID    string `gorm:"primaryKey;column:user_id"`
	MovieID   string `gorm:"primaryKey;column:movie_id"`
	CreatedAt time.Time
}

func (favoriteRow) TableName() string { return "favorites" }

func moviesToDomain(rows []movieRow) []domain.Movie {
	out := make([]domain.Movie, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}
