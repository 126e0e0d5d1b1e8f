// Package server is the reference backend the client state layer talks to:
// a gin API implementing the auth, search, user-movie and favorite endpoints
// over gorm. It exists so the client can be developed and tested end to end
// without external services.
package server

import (
	"fmt"
	"log/slog"

	"moviedeck/internal/database"
	"moviedeck/internal/middleware"
	jwtsvc "moviedeck/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	db  *gorm.DB
	jwt *jwtsvc.Service
	log *slog.Logger
}

func New(db *gorm.DB, jwt *jwtsvc.Service, log *slog.Logger) (*Server, error) {
	if err := db.AutoMigrate(&userRow{}, &movieRow{}, &favoriteRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &Server{db: db, jwt: jwt, log: log}, nil
}

// Open connects to the database by DSN and builds a Server on top.
func Open(dsn string, jwt *jwtsvc.Service, log *slog.Logger) (*Server, error) {
	db, err := database.Connect(dsn)
	if err != nil {
		return nil, err
	}
	return New(db, jwt, log)
}

// Router mounts the API under /api.
func (s *Server) Router(rateLimit float64, rateBurst int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(rateLimit, rateBurst))

	api := r.Group("/api")
	{
		api.POST("/auth/register", s.handleRegister)
		api.POST("/auth/login", s.handleLogin)
		api.POST("/auth/verify", s.handleVerify)
		api.POST("/movies/search", s.handleSearch)

		user := api.Group("/users/:userId")
		user.Use(middleware.RequireAuth(s.jwt), middleware.RequireUserScope())
		{
			user.GET("/movies", s.handleListMovies)
			user.POST("/movies", s.handleAddMovie)
			user.PUT("/movies/:movieId", s.handleEditMovie)
			user.DELETE("/movies/:movieId", s.handleDeleteMovie)
			user.PUT("/movies/:movieId/favorite", s.handleSetFavorite)
		}
	}

	return r
}
