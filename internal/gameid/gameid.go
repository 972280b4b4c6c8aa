// Package gameid produces the public game identifiers exposed to
// players, shaped like game-AAA-0001. The numeric suffix comes from an
// atomic store counter; the legacy parser only runs once at startup to
// seed that counter from whatever the store already holds.
package gameid

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPrefix1 = "game"
	DefaultPrefix2 = "AAA"

	seqDigits = 4
	segments  = 3
)

var ErrMalformed = errors.New("malformed_game_id")

// Format renders an identifier. Sequences beyond 9999 simply grow past
// four digits, matching the original zero-pad behavior.
func Format(prefix1, prefix2 string, n int) string {
	return fmt.Sprintf("%s-%s-%0*d", prefix1, prefix2, seqDigits, n)
}

// Parse splits an identifier into its two alphabetic prefixes and the
// numeric sequence. Anything that is not exactly three dash-delimited
// segments with a numeric tail is ErrMalformed.
func Parse(id string) (prefix1, prefix2 string, n int, err error) {
	parts := strings.Split(id, "-")
	if len(parts) != segments {
		return "", "", 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	n, convErr := strconv.Atoi(parts[2])
	if convErr != nil || n < 0 {
		return "", "", 0, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	return parts[0], parts[1], n, nil
}

// Next increments an identifier in place, preserving its prefixes. This
// is the legacy read-then-increment shape; it survives only for seeding
// and compatibility checks, never for issuing IDs under load.
func Next(last string) (string, error) {
	p1, p2, n, err := Parse(last)
	if err != nil {
		return "", err
	}
	return Format(p1, p2, n+1), nil
}

// Sequencer is the atomic counter the generator draws from.
type Sequencer interface {
	NextGameSequence(ctx context.Context) (int, error)
}

// Seeder is what the generator needs to install the counter's starting
// point from already-persisted games.
type Seeder interface {
	LatestGamePublicID(ctx context.Context) (string, error)
	SeedGameSequence(ctx context.Context, n int) error
}

type Generator struct {
	seq     Sequencer
	prefix1 string
	prefix2 string
}

func NewGenerator(seq Sequencer) *Generator {
	return &Generator{seq: seq, prefix1: DefaultPrefix1, prefix2: DefaultPrefix2}
}

// Next issues a fresh identifier. Two concurrent calls can never collide:
// the counter increment is a single conditional write in the store.
func (g *Generator) Next(ctx context.Context) (string, error) {
	n, err := g.seq.NextGameSequence(ctx)
	if err != nil {
		return "", err
	}
	return Format(g.prefix1, g.prefix2, n), nil
}

// Seed initializes the counter from the newest persisted game so the
// sequence continues where the legacy scheme left off. An empty store
// seeds at zero, making the first issued ID game-AAA-0001. A malformed
// persisted ID surfaces ErrMalformed rather than silently restarting
// the sequence.
func Seed(ctx context.Context, s Seeder) error {
	last, err := s.LatestGamePublicID(ctx)
	if err != nil {
		return err
	}
	if last == "" {
		return s.SeedGameSequence(ctx, 0)
	}
	_, _, n, err := Parse(last)
	if err != nil {
		return err
	}
	return s.SeedGameSequence(ctx, n)
}
