package server

import (
	"fmt"

	"moviedeck/internal/domain"
	"moviedeck/internal/pkg/strlist"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCatalog loads the built-in catalog into the database, skipping titles
// that are already present.
func SeedCatalog(db *gorm.DB) (int, error) {
	if err := db.AutoMigrate(&movieRow{}); err != nil {
		return 0, fmt.Errorf("failed to migrate: %w", err)
	}

	rows := make([]movieRow, 0, len(catalog))
	for _, m := range catalog {
		rows = append(rows, movieRow{
			ID:             m.ID,
			OmdbID:         m.OmdbID,
			Title:          m.Title,
			Year:           m.Year,
			RuntimeMinutes: m.RuntimeMinutes,
			Genre:          strlist.ToString(m.Genre),
			Director:       strlist.ToString(m.Director),
			Poster:         m.Poster,
			Source:         string(domain.SourceCatalog),
		})
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

var catalog = []domain.Movie{
	{
		ID: "cat-0001", OmdbID: "tt0133093", Title: "The Matrix", Year: 1999, RuntimeMinutes: 136,
		Genre: []string{"Action", "Sci-Fi"}, Director: []string{"Lana Wachowski", "Lilly Wachowski"},
		Poster: "https://posters.example.com/the-matrix.jpg",
	},
	{
		ID: "cat-0002", OmdbID: "tt1375666", Title: "Inception", Year: 2010, RuntimeMinutes: 148,
		Genre: []string{"Action", "Sci-Fi", "Thriller"}, Director: []string{"Christopher Nolan"},
		Poster: "https://posters.example.com/inception.jpg",
	},
	{
		ID: "cat-0003", OmdbID: "tt0816692", Title: "Interstellar", Year: 2014, RuntimeMinutes: 169,
		Genre: []string{"Adventure", "Drama", "Sci-Fi"}, Director: []string{"Christopher Nolan"},
		Poster: "https://posters.example.com/interstellar.jpg",
	},
	{
		ID: "cat-0004", OmdbID: "tt1160419", Title: "Dune", Year: 2021, RuntimeMinutes: 155,
		Genre: []string{"Adventure", "Drama", "Sci-Fi"}, Director: []string{"Denis Villeneuve"},
		Poster: "https://posters.example.com/dune.jpg",
	},
	{
		ID: "cat-0005", OmdbID: "tt0110912", Title: "Pulp Fiction", Year: 1994, RuntimeMinutes: 154,
		Genre: []string{"Crime", "Drama"}, Director: []string{"Quentin Tarantino"},
		Poster: "https://posters.example.com/pulp-fiction.jpg",
	},
	{
		ID: "cat-0006", OmdbID: "tt0111161", Title: "The Shawshank Redemption", Year: 1994, RuntimeMinutes: 142,
		Genre: []string{"Drama"}, Director: []string{"Frank Darabont"},
		Poster: "https://posters.example.com/shawshank.jpg",
	},
	{
		ID: "cat-0007", OmdbID: "tt0068646", Title: "The Godfather", Year: 1972, RuntimeMinutes: 175,
		Genre: []string{"Crime", "Drama"}, Director: []string{"Francis Ford Coppola"},
		Poster: "https://posters.example.com/the-godfather.jpg",
	},
	{
		ID: "cat-0008", OmdbID: "tt0076759", Title: "Star Wars", Year: 1977, RuntimeMinutes: 121,
		Genre: []string{"Action", "Adventure", "Fantasy"}, Director: []string{"George Lucas"},
		Poster: "https://posters.example.com/star-wars.jpg",
	},
	{
		ID: "cat-0009", OmdbID: "tt0245429", Title: "Spirited Away", Year: 2001, RuntimeMinutes: 125,
		Genre: []string{"Animation", "Adventure", "Family"}, Director: []string{"Hayao Miyazaki"},
		Poster: "https://posters.example.com/spirited-away.jpg",
	},
	{
		ID: "cat-0010", OmdbID: "tt0167260", Title: "The Lord of the Rings: The Return of the King", Year: 2003, RuntimeMinutes: 201,
		Genre: []string{"Action", "Adventure", "Drama"}, Director: []string{"Peter Jackson"},
		Poster: "https://posters.example.com/rotk.jpg",
	},
	{
		ID: "cat-0011", OmdbID: "tt0114709", Title: "Toy Story", Year: 1995, RuntimeMinutes: 81,
		Genre: []string{"Animation", "Adventure", "Comedy"}, Director: []string{"John Lasseter"},
		Poster: "https://posters.example.com/toy-story.jpg",
	},
	{
		ID: "cat-0012", OmdbID: "tt2582802", Title: "Whiplash", Year: 2014, RuntimeMinutes: 106,
		Genre: []string{"Drama", "Music"}, Director: []string{"Damien Chazelle"},
		Poster: "https://posters.example.com/whiplash.jpg",
	},
}
