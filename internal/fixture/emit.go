package fixture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Written describes a fixture file produced by Emit.
type Written struct {
	Fixture Fixture
	Path    string
	Content []byte
}

// Emitter writes fixtures into a directory.
type Emitter struct {
	Dir string // output directory, created if missing; "" means the working directory
	Ext string // file extension without dot; "" means DefaultExt
}

// Emit renders every fixture and creates or overwrites its file.
//
// Files are written one at a time. The first failure aborts the run and
// the files already written are returned alongside the error.
func (e *Emitter) Emit(ctx context.Context, fixtures []Fixture) ([]Written, error) {
	dir := e.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	written := make([]Written, 0, len(fixtures))
	for _, f := range fixtures {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		path := filepath.Join(dir, f.FileName(e.ext()))
		content := f.Render()
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return written, fmt.Errorf("write fixture %s: %w", f.Name(), err)
		}
		written = append(written, Written{Fixture: f, Path: path, Content: content})
	}

	return written, nil
}

func (e *Emitter) dir() string {
	if e.Dir == "" {
		return "."
	}
	return e.Dir
}

func (e *Emitter) ext() string {
	if e.Ext == "" {
		return DefaultExt
	}
	return e.Ext
}

// Drift status values reported by Verify.
const (
	DriftMissing = "missing"
	DriftStale   = "stale"
)

// Drift is a fixture whose file does not match its rendered contents.
type Drift struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Status string `json:"status"` // "missing" | "stale"
}

// Verify compares the files in dir against freshly rendered fixtures and
// returns every file that is missing or differs. Files in dir that do not
// correspond to a fixture are ignored.
func (e *Emitter) Verify(fixtures []Fixture) ([]Drift, error) {
	dir := e.dir()
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fixture directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var drift []Drift
	for _, f := range fixtures {
		path := filepath.Join(dir, f.FileName(e.ext()))
		actual, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			drift = append(drift, Drift{Name: f.Name(), Path: path, Status: DriftMissing})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", f.Name(), err)
		}
		if !bytes.Equal(actual, f.Render()) {
			drift = append(drift, Drift{Name: f.Name(), Path: path, Status: DriftStale})
		}
	}

	return drift, nil
}
