package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akaday/clspv/internal/builtin"
	"github.com/akaday/clspv/internal/fixture"
)

func written(op builtin.Operation, width uint32, signed bool, vector uint32) fixture.Written {
	f := fixture.Fixture{Op: op, Type: builtin.ElementType{Width: width, Signed: signed, Vector: vector}}
	return fixture.Written{Fixture: f, Path: f.FileName("ll"), Content: f.Render()}
}

func TestFixtureDigest(t *testing.T) {
	a := FixtureDigest([]byte("x"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, FixtureDigest([]byte("x")))
	assert.NotEqual(t, a, FixtureDigest([]byte("y")))
	assert.NotEqual(t, a, hashWithDomain(DomainManifest, []byte("x")))
}

func TestBuild_SortedEntries(t *testing.T) {
	m, err := Build([]fixture.Written{
		written(builtin.Rhadd, 32, false, 4),
		written(builtin.Hadd, 8, true, 1),
	}, "ll")
	require.NoError(t, err)

	require.Len(t, m.Entries, 2)
	assert.Equal(t, GeneratorVersion, m.GeneratorVersion)

	first := m.Entries[0]
	assert.Equal(t, "hadd_char", first.Name)
	assert.Equal(t, "hadd_char.ll", first.File)
	assert.Equal(t, "hadd", first.Operation)
	assert.Equal(t, "char", first.Type)
	assert.Equal(t, FixtureDigest(written(builtin.Hadd, 8, true, 1).Content), first.Digest)

	assert.Equal(t, "rhadd_uint4", m.Entries[1].Name)
	assert.Len(t, m.Digest, 64)
}

func TestBuild_DigestIndependentOfOrder(t *testing.T) {
	a := written(builtin.Hadd, 16, false, 2)
	b := written(builtin.Rhadd, 64, true, 3)

	m1, err := Build([]fixture.Written{a, b}, "ll")
	require.NoError(t, err)
	m2, err := Build([]fixture.Written{b, a}, "ll")
	require.NoError(t, err)

	assert.Equal(t, m1.Digest, m2.Digest)
}

func TestBuild_DigestTracksContent(t *testing.T) {
	a := written(builtin.Hadd, 16, false, 2)
	m1, err := Build([]fixture.Written{a}, "ll")
	require.NoError(t, err)

	a.Content = append([]byte(nil), a.Content...)
	a.Content = append(a.Content, '\n')
	m2, err := Build([]fixture.Written{a}, "ll")
	require.NoError(t, err)

	assert.NotEqual(t, m1.Digest, m2.Digest)
}

func TestDigest_IgnoresDigestField(t *testing.T) {
	m, err := Build([]fixture.Written{written(builtin.Hadd, 8, false, 1)}, "ll")
	require.NoError(t, err)

	recomputed, err := Digest(m)
	require.NoError(t, err)
	assert.Equal(t, m.Digest, recomputed)
}
