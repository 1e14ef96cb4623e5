package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileVersion = 1

type fileState struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// File keeps every key in a single JSON document, rewritten atomically on
// each change.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store backed by the JSON document at path. The file is
// created on first write.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("kvstore: file path is required")
	}
	return &File{path: path}, nil
}

// Path returns the backing file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	state, err := f.read()
	if err != nil {
		return nil, err
	}
	value, ok := state.Entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

func (f *File) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	state, err := f.readOrReplace()
	if err != nil {
		return err
	}
	state.Entries[key] = string(value)
	return f.write(state)
}

func (f *File) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	state, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		return f.write(emptyState())
	}
	if err != nil {
		return err
	}
	if _, ok := state.Entries[key]; !ok {
		return nil
	}
	delete(state.Entries, key)
	return f.write(state)
}

// Close is a no-op; the file is only open during reads and writes.
func (f *File) Close() error {
	return nil
}

func emptyState() fileState {
	return fileState{Version: fileVersion, Entries: map[string]string{}}
}

// readOrReplace reads the document, starting from an empty one when the
// existing document is corrupt.
func (f *File) readOrReplace() (fileState, error) {
	state, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		return emptyState(), nil
	}
	return state, err
}

func (f *File) read() (fileState, error) {
	state := emptyState()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("kvstore: read %s: %w", f.path, err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return emptyState(), fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if state.Version != fileVersion {
		return emptyState(), fmt.Errorf("%w: %s: unsupported version %d", ErrCorrupt, f.path, state.Version)
	}
	if state.Entries == nil {
		state.Entries = map[string]string{}
	}
	return state, nil
}

// write replaces the document through a temp file and rename.
func (f *File) write(state fileState) error {
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("kvstore: create dir: %w", err)
	}
	tmpPath := f.path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("kvstore: %w", err)
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("kvstore: write %s: %w", tmpPath, err)
		}
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("kvstore: replace %s: %w", f.path, err)
	}
	return nil
}
