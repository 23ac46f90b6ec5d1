// Package manifest describes a generated fixture set by content digest.
//
// A manifest lists every fixture of a run with the SHA-256 digest of its
// bytes. The manifest's own digest is computed over RFC 8785 canonical JSON,
// so two runs that produced identical files have identical manifest digests
// regardless of output directory or enumeration order.
package manifest

import (
	"sort"

	"github.com/akaday/clspv/internal/fixture"
)

// GeneratorVersion is recorded in every manifest. Bump it when the fixture
// format changes.
const GeneratorVersion = "0.1.0"

// Entry describes one fixture file.
type Entry struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	Operation string `json:"operation"`
	Type      string `json:"type"`
	Digest    string `json:"digest"`
}

// Manifest is the digest summary of a fixture set.
type Manifest struct {
	GeneratorVersion string  `json:"generator_version"`
	Entries          []Entry `json:"entries"`
	Digest           string  `json:"digest"`
}

// Build creates a manifest from written fixtures. Entries are sorted by
// name and the manifest digest is filled in.
func Build(written []fixture.Written, ext string) (*Manifest, error) {
	entries := make([]Entry, 0, len(written))
	for _, w := range written {
		entries = append(entries, Entry{
			Name:      w.Fixture.Name(),
			File:      w.Fixture.FileName(ext),
			Operation: w.Fixture.Op.String(),
			Type:      w.Fixture.Type.TypeName(),
			Digest:    FixtureDigest(w.Content),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	m := &Manifest{
		GeneratorVersion: GeneratorVersion,
		Entries:          entries,
	}
	digest, err := Digest(m)
	if err != nil {
		return nil, err
	}
	m.Digest = digest
	return m, nil
}

// canonicalMap converts the manifest to plain values for MarshalCanonical.
func (m *Manifest) canonicalMap() map[string]any {
	entries := make([]any, len(m.Entries))
	for i, e := range m.Entries {
		entries[i] = map[string]any{
			"name":      e.Name,
			"file":      e.File,
			"operation": e.Operation,
			"type":      e.Type,
			"digest":    e.Digest,
		}
	}
	return map[string]any{
		"generator_version": m.GeneratorVersion,
		"entries":           entries,
	}
}
