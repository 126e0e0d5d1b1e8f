package server

import (
	"errors"
	"net/http"
	"strings"

	"moviedeck/internal/domain"
	"moviedeck/internal/pkg/response"
	"moviedeck/internal/pkg/strlist"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type searchRequest struct {
	Query string `json:"query"`
}

type movieInput struct {
	Title          string   `json:"title" binding:"required"`
	Year           int      `json:"year" binding:"required"`
	RuntimeMinutes int      `json:"runtimeMinutes" binding:"required"`
	Genre          []string `json:"genre"`
	Director       []string `json:"director"`
	Poster         string   `json:"poster"`
}

type favoriteInput struct {
	IsFavorite *bool `json:"isFavorite" binding:"required"`
}

// handleSearch matches catalog titles by case-insensitive substring. An
// empty result is a valid empty list here; treating it as an error is the
// client's policy.
func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid search request")
		return
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	var rows []movieRow
	err := s.db.
		Where("source = ? AND lower(title) LIKE ?", string(domain.SourceCatalog), "%"+query+"%").
		Order("title").
		Find(&rows).Error
	if err != nil {
		s.log.Error("search failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "Search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": moviesToDomain(rows)})
}

// handleListMovies returns the user's own movies, or the user's favorites
// (of any source) with ?favorites=true.
func (s *Server) handleListMovies(c *gin.Context) {
	userID := c.Param("userId")

	var rows []movieRow
	var err error
	if c.Query("favorites") == "true" {
		err = s.db.
			Joins("JOIN favorites ON favorites.movie_id = movies.id AND favorites.user_id = ?", userID).
			Order("movies.title").
			Find(&rows).Error
	} else {
		err = s.db.Where("owner_id = ?", userID).Order("created_at").Find(&rows).Error
	}
	if err != nil {
		s.log.Error("failed to list movies", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list movies")
		return
	}

	c.JSON(http.StatusOK, moviesToDomain(rows))
}

func (s *Server) handleAddMovie(c *gin.Context) {
	userID := c.Param("userId")

	var req movieInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid movie data")
		return
	}

	if s.titleTaken(userID, req.Title, "") {
		response.Error(c, http.StatusConflict, "A movie with the same name already exists.")
		return
	}

	row := movieRow{
		ID:             uuid.NewString(),
		OwnerID:        &userID,
		Title:          strings.TrimSpace(req.Title),
		Year:           req.Year,
		RuntimeMinutes: req.RuntimeMinutes,
		Genre:          strlist.ToString(req.Genre),
		Director:       strlist.ToString(req.Director),
		Poster:         req.Poster,
		Source:         string(domain.SourceCustom),
	}
	if err := s.db.Create(&row).Error; err != nil {
		s.log.Error("failed to create movie", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to create movie")
		return
	}

	c.JSON(http.StatusCreated, row.toDomain())
}

func (s *Server) handleEditMovie(c *gin.Context) {
	userID := c.Param("userId")
	movieID := c.Param("movieId")

	var req movieInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid movie data")
		return
	}

	row, ok := s.ownedMovie(c, userID, movieID)
	if !ok {
		return
	}

	if s.titleTaken(userID, req.Title, movieID) {
		response.Error(c, http.StatusConflict, "A movie with the same name already exists.")
		return
	}

	row.Title = strings.TrimSpace(req.Title)
	row.Year = req.Year
	row.RuntimeMinutes = req.RuntimeMinutes
	row.Genre = strlist.ToString(req.Genre)
	row.Director = strlist.ToString(req.Director)
	row.Poster = req.Poster
	if err := s.db.Save(&row).Error; err != nil {
		s.log.Error("failed to update movie", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to update movie")
		return
	}

	c.JSON(http.StatusOK, row.toDomain())
}

func (s *Server) handleDeleteMovie(c *gin.Context) {
	userID := c.Param("userId")
	movieID := c.Param("movieId")

	row, ok := s.ownedMovie(c, userID, movieID)
	if !ok {
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", row.ID).Delete(&favoriteRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
	if err != nil {
		s.log.Error("failed to delete movie", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete movie")
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) handleSetFavorite(c *gin.Context) {
	userID := c.Param("userId")
	movieID := c.Param("movieId")

	var req favoriteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid favorite data")
		return
	}

	var count int64
	s.db.Model(&movieRow{}).Where("id = ?", movieID).Count(&count)
	if count == 0 {
		response.Error(c, http.StatusNotFound, "Movie not found")
		return
	}

	if *req.IsFavorite {
		fav := favoriteRow{UserID: userID, MovieID: movieID}
		if err := s.db.FirstOrCreate(&fav, fav).Error; err != nil {
			s.log.Error("failed to set favorite", "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to update favorite")
			return
		}
	} else {
		if err := s.db.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&favoriteRow{}).Error; err != nil {
			s.log.Error("failed to unset favorite", "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to update favorite")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"isFavorite": *req.IsFavorite})
}

func (s *Server) ownedMovie(c *gin.Context, userID, movieID string) (movieRow, bool) {
	var row movieRow
	err := s.db.Where("id = ? AND owner_id = ?", movieID, userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found")
		} else {
			s.log.Error("failed to load movie", "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to load movie")
		}
		return movieRow{}, false
	}
	return row, true
}

// titleTaken mirrors the client-side duplicate guard for callers that skip
// the client: the user's own movies must not share a trimmed,
// case-insensitive title.
func (s *Server) titleTaken(userID, title, excludeID string) bool {
	var count int64
	q := s.db.Model(&movieRow{}).
		Where("owner_id = ? AND lower(title) = ?", userID, strings.ToLower(strings.TrimSpace(title)))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	q.Count(&count)
	return count > 0
}
