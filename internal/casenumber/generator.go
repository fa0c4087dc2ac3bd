// Package casenumber issues case numbers of the form AVA{YY}{MM}-{seq}.
package casenumber

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrExhausted is returned when no free number was found after several suffix attempts.
var ErrExhausted = errors.New("no free case number")

const maxSuffixAttempts = 20

// Sequence hands out increasing numbers per month prefix.
type Sequence interface {
	Next(ctx context.Context, prefix string) (int64, error)
}

// Registry answers questions about numbers already issued.
type Registry interface {
	ExistsCaseNumber(ctx context.Context, number string) (bool, error)
	CountCaseNumbers(ctx context.Context, prefix string) (int64, error)
}

// Generator builds case numbers.
type Generator struct {
	prefix   string
	seq      Sequence
	registry Registry
	suffix   func() int
}

// NewGenerator creates a generator for the given brand prefix (normally "AVA").
func NewGenerator(prefix string, seq Sequence, registry Registry) *Generator {
	return &Generator{
		prefix:   prefix,
		seq:      seq,
		registry: registry,
		suffix:   func() int { return rand.IntN(100) },
	}
}

// MonthPrefix returns e.g. "AVA2501-" for January 2025.
func (g *Generator) MonthPrefix(t time.Time) string {
	return fmt.Sprintf("%s%02d%02d-", g.prefix, t.Year()%100, int(t.Month()))
}

// Next issues the next number for the month of now. A random two-digit suffix is
// appended only when the sequenced number is already taken.
func (g *Generator) Next(ctx context.Context, now time.Time) (string, error) {
	prefix := g.MonthPrefix(now)
	n, err := g.seq.Next(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("next sequence: %w", err)
	}
	candidate := fmt.Sprintf("%s%05d", prefix, n)

	taken, err := g.registry.ExistsCaseNumber(ctx, candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}
	for i := 0; i < maxSuffixAttempts; i++ {
		alt := fmt.Sprintf("%s%02d", candidate, g.suffix())
		taken, err := g.registry.ExistsCaseNumber(ctx, alt)
		if err != nil {
			return "", err
		}
		if !taken {
			return alt, nil
		}
	}
	return "", ErrExhausted
}

// RedisSequence keeps one INCR counter per month prefix, seeded from the number of
// cases already issued under that prefix.
type RedisSequence struct {
	client  redis.Cmdable
	keyBase string
	seed    Registry
}

// NewRedisSequence creates a sequence. seed may be nil.
func NewRedisSequence(client redis.Cmdable, keyBase string, seed Registry) *RedisSequence {
	return &RedisSequence{client: client, keyBase: keyBase, seed: seed}
}

// Next increments and returns the counter for prefix.
func (s *RedisSequence) Next(ctx context.Context, prefix string) (int64, error) {
	key := s.keyBase + prefix
	if s.seed != nil {
		exists, err := s.client.Exists(ctx, key).Result()
		if err != nil {
			return 0, err
		}
		if exists == 0 {
			issued, err := s.seed.CountCaseNumbers(ctx, prefix)
			if err != nil {
				return 0, err
			}
			if err := s.client.SetNX(ctx, key, issued, 0).Err(); err != nil {
				return 0, err
			}
		}
	}
	return s.client.Incr(ctx, key).Result()
}
