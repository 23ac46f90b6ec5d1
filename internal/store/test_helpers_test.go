package store

import (
	"path/filepath"
	"testing"

	"github.com/akaday/clspv/internal/builtin"
	"github.com/akaday/clspv/internal/fixture"
	"github.com/akaday/clspv/internal/manifest"
)

// createTestStore opens a ledger in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestManifest builds a manifest for the given fixtures without
// touching the filesystem.
func createTestManifest(t *testing.T, fixtures ...fixture.Fixture) *manifest.Manifest {
	t.Helper()
	written := make([]fixture.Written, 0, len(fixtures))
	for _, f := range fixtures {
		written = append(written, fixture.Written{Fixture: f, Content: f.Render()})
	}
	m, err := manifest.Build(written, fixture.DefaultExt)
	if err != nil {
		t.Fatalf("manifest.Build() failed: %v", err)
	}
	return m
}

func testFixture(op builtin.Operation, width uint32, signed bool, vector uint32) fixture.Fixture {
	return fixture.Fixture{Op: op, Type: builtin.ElementType{Width: width, Signed: signed, Vector: vector}}
}
