// AngelaMos | 2026
// store.go

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Collection file names. One JSON array per file, read and replaced
// wholesale on every operation.
const (
	UsersFile     = "users.json"
	ImagesFile    = "images.json"
	DiseasesFile  = "diseases.json"
	QuizzesFile   = "quizzes.json"
	AnatomyFile   = "anatomy_content.json"
	AnalyticsFile = "analytics.json"
)

var collectionFiles = []string{
	UsersFile,
	ImagesFile,
	DiseasesFile,
	QuizzesFile,
	AnatomyFile,
	AnalyticsFile,
}

// Store is the root handle over the data directory. Typed access goes
// through Collection[T]; the Store itself only does directory-level
// concerns (init, health, stats).
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// EnsureCollections creates any missing collection files as empty arrays.
func (s *Store) EnsureCollections() error {
	for _, name := range collectionFiles {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", name, err)
		}

		if err := writeAtomic(path, []byte("[]\n")); err != nil {
			return fmt.Errorf("init %s: %w", name, err)
		}
	}

	return nil
}

// Ping verifies the data directory is writable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	probe := filepath.Join(s.dir, ".probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("data dir not writable: %w", err)
	}

	//nolint:errcheck // probe cleanup is best-effort
	_ = os.Remove(probe)
	return nil
}

// Stats reports per-collection record counts. Missing files count as zero.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	stats := make(map[string]int, len(collectionFiles))

	for _, name := range collectionFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			stats[name] = 0
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}

		stats[name] = len(items)
	}

	return stats, nil
}

// Collection is a typed view over one JSON file. The mutex serializes the
// whole-file read-modify-write cycle; there is no finer granularity because
// the persistence contract is whole-collection replace.
type Collection[T any] struct {
	path string
	mu   sync.RWMutex
}

func NewCollection[T any](s *Store, fileName string) *Collection[T] {
	return &Collection[T]{path: filepath.Join(s.dir, fileName)}
}

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.read(ctx)
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.write(ctx, items)
}

// Update runs a read-modify-write cycle under the write lock so concurrent
// mutations cannot lose each other's writes.
func (c *Collection[T]) Update(
	ctx context.Context,
	fn func(items []T) ([]T, error),
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read(ctx)
	if err != nil {
		return err
	}

	updated, err := fn(items)
	if err != nil {
		return err
	}

	return c.write(ctx, updated)
}

func (c *Collection[T]) read(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(c.path), err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(c.path), err)
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if items == nil {
		items = []T{}
	}

	// Two-space indent matches the files the web app shipped with.
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(c.path), err)
	}

	if err := writeAtomic(c.path, append(data, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(c.path), err)
	}

	return nil
}

// writeAtomic writes via a temp file and rename so a crash mid-write never
// leaves a truncated collection.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		//nolint:errcheck // cleanup on write failure
		_ = tmp.Close()
		//nolint:errcheck // cleanup on write failure
		_ = os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		//nolint:errcheck // cleanup on close failure
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		//nolint:errcheck // cleanup on rename failure
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}
