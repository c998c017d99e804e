// Package git locates the catalog repository and reads the maintainer
// identity from git configuration. It uses the go-git library only and never
// shells out to the git CLI.
package git

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// ErrNoIdentity is returned when git config has no user name or email.
var ErrNoIdentity = errors.New("git user.name and user.email are not configured")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger atomic.Pointer[func(format string, args ...any)]

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	if logger == nil {
		debugLogger.Store(nil)
		return
	}
	debugLogger.Store(&logger)
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if logger := debugLogger.Load(); logger != nil {
		(*logger)(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// RepositoryRoot returns the worktree root of the repository containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// IsGitRepository checks if path is within a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// Identity is a name and email pair from git config.
type Identity struct {
	Name  string
	Email string
}

// Complete reports whether both fields are set.
func (i Identity) Complete() bool {
	return i.Name != "" && i.Email != ""
}

// String formats the identity as "Name <email>".
func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// UserIdentity reads user.name and user.email for the repository containing
// path, merged with the global config. Outside a repository only the global
// config is read. Author settings win over user settings, as in git.
func UserIdentity(path string) (Identity, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return Identity{}, err
	}

	id := Identity{Name: cfg.User.Name, Email: cfg.User.Email}
	if cfg.Author.Name != "" {
		id.Name = cfg.Author.Name
	}
	if cfg.Author.Email != "" {
		id.Email = cfg.Author.Email
	}
	logDebug("[git] UserIdentity: name=%q email=%q", id.Name, id.Email)

	if !id.Complete() {
		return id, ErrNoIdentity
	}
	return id, nil
}

func loadConfig(path string) (*config.Config, error) {
	repo, err := openRepo(path)
	if err != nil {
		cfg, globalErr := config.LoadConfig(config.GlobalScope)
		if globalErr != nil {
			return nil, fmt.Errorf("loading global git config: %w", globalErr)
		}
		return cfg, nil
	}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("loading git config: %w", err)
	}
	return cfg, nil
}
