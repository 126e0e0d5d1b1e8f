// Command moviedeck is a small terminal front-end over the client state
// layer: it signs in, searches the catalog, manages the personal list and
// toggles favorites against a running backend. Session state persists in the
// local state database between invocations.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"moviedeck/internal/api"
	"moviedeck/internal/config"
	"moviedeck/internal/domain"
	"moviedeck/internal/modules/auth"
	"moviedeck/internal/pkg/logger"
	"moviedeck/internal/storage"
	"moviedeck/internal/store"
)

const usage = `usage: moviedeck <command> [args]

  register <username> <password> [email]   create an account
  login <login> <password>                 sign in with username or email
  logout                                   sign out and clear local state
  search <query>                           search the catalog
  movies                                   list your own movies
  add <title> <year> <runtime>             add a movie to your list
  edit <movieId> <title> <year> <runtime>  edit one of your movies
  delete <movieId>                         delete one of your movies
  fav <movieId>                            toggle a favorite
  favs                                     list your favorites
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fail("invalid configuration: %v", err)
	}

	local, err := storage.Open(cfg.StateDB, logger.Default())
	if err != nil {
		fail("failed to open local state: %v", err)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, local, logger.Default())
	st := store.New(client, local, logger.Default())
	ctx := context.Background()

	if err := run(ctx, st, os.Args[1], os.Args[2:]); err != nil {
		fail("%v", err)
	}
}

func run(ctx context.Context, st *store.Store, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: register <username> <password> [email]")
		}
		req := auth.RegisterRequest{Username: args[0], Password: args[1]}
		if len(args) > 2 {
			req.Email = args[2]
		}
		user, err := st.Auth.Register(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("registered as %s (%s)\n", user.Username, user.ID)
		return nil

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <login> <password>")
		}
		user, err := st.Auth.Login(ctx, auth.LoginRequest{Login: args[0], Password: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s (%s)\n", user.Username, user.ID)
		return nil

	case "logout":
		st.Logout()
		fmt.Println("signed out")
		return nil

	case "search":
		if len(args) < 1 {
			return fmt.Errorf("usage: search <query>")
		}
		results, err := st.Movies.Search(ctx, strings.Join(args, " "), 1)
		if err != nil {
			return err
		}
		printMovies(results, st)
		return nil

	case "movies":
		user, err := currentUser(ctx, st)
		if err != nil {
			return err
		}
		list, err := st.UserMovies.Fetch(ctx, user.ID)
		if err != nil {
			return err
		}
		printMovies(list, st)
		return nil

	case "add", "edit":
		return runEdit(ctx, st, cmd, args)

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <movieId>")
		}
		user, err := currentUser(ctx, st)
		if err != nil {
			return err
		}
		if err := st.UserMovies.Delete(ctx, user.ID, args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	case "fav":
		if len(args) != 1 {
			return fmt.Errorf("usage: fav <movieId>")
		}
		user, err := currentUser(ctx, st)
		if err != nil {
			return err
		}
		if err := st.Favorites.Toggle(ctx, user.ID, args[0]); err != nil {
			return err
		}
		if st.Favorites.IsFavorite(args[0]) {
			fmt.Println("favorited")
		} else {
			fmt.Println("unfavorited")
		}
		return nil

	case "favs":
		user, err := currentUser(ctx, st)
		if err != nil {
			return err
		}
		favs, err := st.Favorites.Fetch(ctx, user.ID)
		if err != nil {
			return err
		}
		printMovies(favs, st)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runEdit(ctx context.Context, st *store.Store, cmd string, args []string) error {
	user, err := currentUser(ctx, st)
	if err != nil {
		return err
	}

	var movieID string
	if cmd == "edit" {
		if len(args) != 4 {
			return fmt.Errorf("usage: edit <movieId> <title> <year> <runtime>")
		}
		movieID, args = args[0], args[1:]
	} else if len(args) != 3 {
		return fmt.Errorf("usage: add <title> <year> <runtime>")
	}

	year, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[1])
	}
	runtime, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid runtime %q", args[2])
	}
	data := domain.CreateMovieData{Title: args[0], Year: year, RuntimeMinutes: runtime}

	var movie *domain.Movie
	if cmd == "add" {
		movie, err = st.UserMovies.Add(ctx, user.ID, data)
	} else {
		movie, err = st.UserMovies.Edit(ctx, user.ID, movieID, data)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s %q (%s)\n", cmd+"ed", movie.Title, movie.ID)
	return nil
}

// currentUser re-derives the identity from the stored token when the process
// starts cold.
func currentUser(ctx context.Context, st *store.Store) (*domain.User, error) {
	if s := st.Auth.Snapshot(); s.User != nil {
		return s.User, nil
	}
	user, err := st.Auth.VerifyToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("not signed in: %w", err)
	}
	return user, nil
}

func printMovies(list []domain.Movie, st *store.Store) {
	for _, m := range list {
		mark := " "
		if st.Favorites.IsFavorite(m.ID) {
			mark = "*"
		}
		fmt.Printf("%s %-40s %d  %3dm  %-8s %s\n", mark, m.Title, m.Year, m.RuntimeMinutes, m.Source, m.ID)
	}
	if len(list) == 0 {
		fmt.Println("(no movies)")
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
