package store

import (
	"context"
	"testing"

	"github.com/akaday/clspv/internal/builtin"
)

func TestRecordRun_AssignsSequentialSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	m := createTestManifest(t, testFixture(builtin.Hadd, 8, true, 1))

	first, err := s.RecordRun(ctx, "run-1", "out", "ll", m)
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	second, err := s.RecordRun(ctx, "run-2", "out", "ll", m)
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	if first.Seq != 1 || second.Seq != 2 {
		t.Errorf("seq = %d, %d; want 1, 2", first.Seq, second.Seq)
	}
	if first.ManifestDigest != m.Digest {
		t.Errorf("manifest digest = %q, want %q", first.ManifestDigest, m.Digest)
	}
	if first.FixtureCount != 1 {
		t.Errorf("fixture count = %d, want 1", first.FixtureCount)
	}
}

func TestRecordRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	m := createTestManifest(t, testFixture(builtin.Rhadd, 16, false, 2))

	first, err := s.RecordRun(ctx, "run-1", "a", "ll", m)
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	again, err := s.RecordRun(ctx, "run-1", "b", "txt", m)
	if err != nil {
		t.Fatalf("second RecordRun() failed: %v", err)
	}

	if again != first {
		t.Errorf("re-recording returned %+v, want %+v", again, first)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs, want 1", len(runs))
	}
}

func TestListRuns_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	m := createTestManifest(t, testFixture(builtin.Hadd, 32, false, 4))

	gen := NewFixedGenerator("zzz", "aaa", "mmm")
	for i := 0; i < 3; i++ {
		if _, err := s.RecordRun(ctx, gen.Generate(), ".", "ll", m); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}

	want := []string{"zzz", "aaa", "mmm"}
	if len(runs) != len(want) {
		t.Fatalf("got %d runs, want %d", len(runs), len(want))
	}
	for i, run := range runs {
		if run.ID != want[i] {
			t.Errorf("runs[%d].ID = %q, want %q", i, run.ID, want[i])
		}
		if run.Seq != int64(i+1) {
			t.Errorf("runs[%d].Seq = %d, want %d", i, run.Seq, i+1)
		}
	}
}

func TestListRuns_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if runs == nil || len(runs) != 0 {
		t.Errorf("ListRuns() = %v, want empty slice", runs)
	}
}

func TestRunFixtures_OrderedByName(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	m := createTestManifest(t,
		testFixture(builtin.Rhadd, 64, true, 3),
		testFixture(builtin.Hadd, 8, false, 1),
		testFixture(builtin.Hadd, 16, true, 2),
	)

	if _, err := s.RecordRun(ctx, "run-1", ".", "ll", m); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	records, err := s.RunFixtures(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunFixtures() failed: %v", err)
	}

	want := []string{"hadd_short2", "hadd_uchar", "rhadd_long3"}
	if len(records) != len(want) {
		t.Fatalf("got %d fixtures, want %d", len(records), len(want))
	}
	for i, r := range records {
		if r.Name != want[i] {
			t.Errorf("records[%d].Name = %q, want %q", i, r.Name, want[i])
		}
		if r.File != want[i]+".ll" {
			t.Errorf("records[%d].File = %q", i, r.File)
		}
		if len(r.Digest) != 64 {
			t.Errorf("records[%d].Digest = %q, want sha256 hex", i, r.Digest)
		}
	}
}

func TestGetRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	m := createTestManifest(t, testFixture(builtin.Hadd, 8, true, 1))

	if _, ok, err := s.GetRun(ctx, "missing"); err != nil || ok {
		t.Errorf("GetRun(missing) = ok %v, err %v; want false, nil", ok, err)
	}

	if _, err := s.RecordRun(ctx, "run-1", "dir", "ll", m); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	run, ok, err := s.GetRun(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("GetRun() = ok %v, err %v", ok, err)
	}
	if run.OutDir != "dir" || run.Seq != 1 {
		t.Errorf("GetRun() = %+v", run)
	}
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	if a == b {
		t.Errorf("expected distinct ids, got %q twice", a)
	}
	if len(a) != 36 {
		t.Errorf("id %q is not a hyphenated UUID", a)
	}
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedGenerator("only")
	if got := gen.Generate(); got != "only" {
		t.Fatalf("Generate() = %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic after ids exhausted")
		}
	}()
	gen.Generate()
}
