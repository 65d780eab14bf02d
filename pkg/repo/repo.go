package repo

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/odvcencio/gitlet/pkg/logger"
	"github.com/odvcencio/gitlet/pkg/object"
)

// DirName is the repository metadata directory at the working-tree root.
const DirName = ".gitlet"

// Repo represents an opened Gitlet repository.
type Repo struct {
	RootDir string        // working directory root
	Dir     string        // .gitlet/ directory
	Store   *object.Store // content-addressed object store
	Config  *Config

	log *slog.Logger
	now func() time.Time
}

// Option configures a Repo at Init or Open.
type Option func(*Repo)

// WithLogger routes repository debug events to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repo) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock replaces the wall clock used for commit timestamps and reflog
// entries.
func WithClock(now func() time.Time) Option {
	return func(r *Repo) {
		if now != nil {
			r.now = now
		}
	}
}

// WithConfig sets the configuration Init writes to config.toml. Open always
// uses the file on disk instead.
func WithConfig(cfg *Config) Option {
	return func(r *Repo) {
		if cfg != nil {
			c := *cfg
			r.Config = &c
		}
	}
}

func newRepo(root string, opts []Option) *Repo {
	dir := filepath.Join(root, DirName)
	r := &Repo{
		RootDir: root,
		Dir:     dir,
		Store:   object.NewStore(dir),
		Config:  DefaultConfig(),
		log:     logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Logger returns the logger the repository writes to.
func (r *Repo) Logger() *slog.Logger {
	return r.log
}

// workPath returns the absolute working-tree location of p.
func (r *Repo) workPath(p object.Path) string {
	return filepath.Join(r.RootDir, p.OS())
}

// SetLogger replaces the repository logger after Open, once the caller has
// read the logging section of the config.
func (r *Repo) SetLogger(l *slog.Logger) {
	if l != nil {
		r.log = l
	}
}
