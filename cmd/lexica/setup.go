package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/lexica/search"
	"github.com/revelaction/lexica/storage"
	"github.com/revelaction/lexica/storage/filesystem"
	"github.com/revelaction/lexica/storage/sqlite/zombiezen"
)

// isCorpus reports whether path is read by the filesystem store: a directory
// or a TSV file.
func isCorpus(path string, info os.FileInfo) bool {
	return info.IsDir() || filepath.Ext(path) == filesystem.Ext
}

// NewTokenRepository returns the store for the configured path. A TSV corpus
// is loaded in memory, with a progress bar when progress is set.
func (e *env) NewTokenRepository(progress bool) (storage.TokenReader, error) {
	path := e.cfg.DBPath
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: repository not found: %s", storage.ErrUnavailable, path)
	}

	if isCorpus(path, info) {
		return e.loadCorpus(path, progress)
	}

	return e.sqliteStore(path)
}

func (e *env) sqliteStore(path string) (*zombiezen.TokenStore, error) {
	pool, err := e.pool.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return zombiezen.NewTokenStore(pool, e.cfg.Table).WithLogger(e.logger), nil
}

func (e *env) loadCorpus(path string, progress bool) (*filesystem.TokenStore, error) {
	s, err := filesystem.NewTokenStore(path)
	if err != nil {
		return nil, err
	}

	if !progress {
		if err := s.Preload(nil); err != nil {
			return nil, err
		}
		e.logger.Info("corpus loaded", "path", path, "tokens", s.Len())
		return s, nil
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(1) // Placeholder, updated in callback
	bar.AppendCompleted()
	bar.PrependElapsed()

	var currentName string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return currentName
	})

	err = s.Preload(func(current, total int, name string) {
		if bar.Total != total {
			bar.Total = total
		}
		currentName = name
		_ = bar.Set(current)
	})
	uiprogress.Stop()

	if err != nil {
		return nil, err
	}

	e.logger.Info("corpus loaded", "path", path, "tokens", s.Len())
	return s, nil
}

// newSearch opens the repository and returns the lookups over it.
func (e *env) newSearch(progress bool) (*search.Search, error) {
	repo, err := e.NewTokenRepository(progress)
	if err != nil {
		return nil, err
	}
	return search.New(repo).WithLimit(e.cfg.Limit), nil
}

// sqliteTarget opens the SQLite database for the maintenance commands. Only
// import (create) may start a new database file.
func (e *env) sqliteTarget(create bool) (*zombiezen.TokenStore, error) {
	path := e.cfg.DBPath
	info, err := os.Stat(path)
	switch {
	case err == nil && isCorpus(path, info):
		return nil, fmt.Errorf("%s is a TSV corpus, not a SQLite database", path)
	case err != nil && !create:
		return nil, fmt.Errorf("%w: repository not found: %s", storage.ErrUnavailable, path)
	}
	return e.sqliteStore(path)
}
