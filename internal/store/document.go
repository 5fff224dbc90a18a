package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	"storefront/internal/apperror"
	"storefront/internal/metrics"
)

const fileMode os.FileMode = 0o644

// guard serializes access to one file within the process.
type guard struct {
	mu sync.RWMutex
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*guard)
)

// guardFor returns the process-wide guard for an absolute path, creating it on first use.
func guardFor(path string) *guard {
	registryMu.Lock()
	defer registryMu.Unlock()

	g, ok := registry[path]
	if !ok {
		g = &guard{}
		registry[path] = g
	}
	return g
}

// Document is a JSON file holding an array of T.
// Every Document opened on the same path shares one guard, so mutations on
// that file are totally ordered no matter how many handles exist.
type Document[T any] struct {
	fs    afero.Fs
	path  string
	name  string
	guard *guard
}

// Open resolves path, creates the parent directory and an empty array file if
// needed, and returns a handle. It blocks until the file exists.
func Open[T any](fs afero.Fs, path string) (*Document[T], error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	d := &Document[T]{
		fs:    fs,
		path:  abs,
		name:  filepath.Base(abs),
		guard: guardFor(abs),
	}

	d.guard.mu.Lock()
	defer d.guard.mu.Unlock()
	if err := d.ensure(); err != nil {
		return nil, err
	}
	return d, nil
}

// Path returns the absolute path of the backing file.
func (d *Document[T]) Path() string {
	return d.path
}

func (d *Document[T]) ensure() error {
	if err := d.fs.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory for %s: %w", d.path, err)
	}

	_, err := d.fs.Stat(d.path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", d.path, err)
	}
	if err := afero.WriteFile(d.fs, d.path, []byte("[]"), fileMode); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", d.path, err)
	}
	return nil
}

// Load returns a snapshot of the current array.
func (d *Document[T]) Load(ctx context.Context) (items []T, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer metrics.ObserveStoreOp(d.name, "load", time.Now(), &err)

	d.guard.mu.RLock()
	defer d.guard.mu.RUnlock()
	return d.read()
}

// Mutate runs fn against the current array under the exclusive guard and writes
// back the array fn returns. When fn fails nothing is written.
//
// ctx is only consulted before the guard is taken; once inside, the
// read-modify-write always runs to completion so the file is never left
// half-written by a cancelled request.
func Mutate[T, R any](ctx context.Context, d *Document[T], fn func(items []T) ([]T, R, error)) (result R, err error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	defer metrics.ObserveStoreOp(d.name, "mutate", time.Now(), &err)

	d.guard.mu.Lock()
	defer d.guard.mu.Unlock()

	items, err := d.read()
	if err != nil {
		return zero, err
	}

	next, result, err := fn(items)
	if err != nil {
		return zero, err
	}

	if err := d.write(next); err != nil {
		return zero, err
	}
	return result, nil
}

func (d *Document[T]) read() ([]T, error) {
	data, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", d.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperror.StorageCorrupt(d.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// write replaces the file through a sibling temp file and a rename.
func (d *Document[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.path, err)
	}

	tmp, err := afero.TempFile(d.fs, filepath.Dir(d.path), "."+d.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", d.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		d.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		d.fs.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		d.fs.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	// Temp files are created 0600; the data file keeps the mode Open gives it.
	if err := d.fs.Chmod(tmpName, fileMode); err != nil {
		d.fs.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := d.fs.Rename(tmpName, d.path); err != nil {
		d.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", d.path, err)
	}
	return nil
}
