package gameid

import (
	"context"
	"errors"
	"testing"
)

func TestFormatPads(t *testing.T) {
	if got := Format("game", "AAA", 1); got != "game-AAA-0001" {
		t.Fatalf("Format = %q", got)
	}
	if got := Format("game", "AAA", 42); got != "game-AAA-0042" {
		t.Fatalf("Format = %q", got)
	}
	if got := Format("game", "AAA", 12345); got != "game-AAA-12345" {
		t.Fatalf("Format past padding = %q", got)
	}
}

func TestNextIncrementsPreservingPrefix(t *testing.T) {
	got, err := Next("game-AAA-0001")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "game-AAA-0002" {
		t.Fatalf("Next = %q, want game-AAA-0002", got)
	}

	got, err = Next("raffle-ZZZ-0099")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "raffle-ZZZ-0100" {
		t.Fatalf("Next = %q, want raffle-ZZZ-0100", got)
	}
}

func TestNextRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "game-0001", "game-AAA-xyz", "game--0001", "game-AAA-0001-extra"} {
		if _, err := Next(id); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Next(%q) err = %v, want ErrMalformed", id, err)
		}
	}
}

type fakeSeq struct {
	n       int
	latest  string
	seeded  *int
	seedErr error
}

func (f *fakeSeq) NextGameSequence(context.Context) (int, error) {
	f.n++
	return f.n, nil
}

func (f *fakeSeq) LatestGamePublicID(context.Context) (string, error) {
	return f.latest, nil
}

func (f *fakeSeq) SeedGameSequence(_ context.Context, n int) error {
	f.seeded = &n
	return f.seedErr
}

func TestGeneratorIssuesSequentialIDs(t *testing.T) {
	g := NewGenerator(&fakeSeq{})
	first, err := g.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first != "game-AAA-0001" {
		t.Fatalf("first = %q, want game-AAA-0001", first)
	}
	second, err := g.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if second != "game-AAA-0002" {
		t.Fatalf("second = %q, want game-AAA-0002", second)
	}
}

func TestSeedEmptyStoreStartsAtZero(t *testing.T) {
	f := &fakeSeq{}
	if err := Seed(context.Background(), f); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if f.seeded == nil || *f.seeded != 0 {
		t.Fatalf("seeded = %v, want 0", f.seeded)
	}
}

func TestSeedContinuesFromPersistedID(t *testing.T) {
	f := &fakeSeq{latest: "game-AAA-0017"}
	if err := Seed(context.Background(), f); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if f.seeded == nil || *f.seeded != 17 {
		t.Fatalf("seeded = %v, want 17", f.seeded)
	}
}

func TestSeedMalformedChainFails(t *testing.T) {
	f := &fakeSeq{latest: "not-an-id-at-all-really"}
	err := Seed(context.Background(), f)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Seed err = %v, want ErrMalformed", err)
	}
	if f.seeded != nil {
		t.Fatal("seed must not run on a malformed chain")
	}
}
