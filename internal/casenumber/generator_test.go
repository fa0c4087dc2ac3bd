package casenumber

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	taken  map[string]bool
	issued int64
	counts int
}

func (f *fakeRegistry) ExistsCaseNumber(_ context.Context, number string) (bool, error) {
	return f.taken[number], nil
}

func (f *fakeRegistry) CountCaseNumbers(_ context.Context, _ string) (int64, error) {
	f.counts++
	return f.issued, nil
}

func setup(t *testing.T, reg *fakeRegistry) (*miniredis.Miniredis, *Generator) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	seq := NewRedisSequence(client, "case_number:seq:", reg)
	return mr, NewGenerator("AVA", seq, reg)
}

var jan2025 = time.Date(2025, time.January, 14, 9, 0, 0, 0, time.UTC)

func TestMonthPrefix(t *testing.T) {
	g := NewGenerator("AVA", nil, nil)
	assert.Equal(t, "AVA2501-", g.MonthPrefix(jan2025))
	assert.Equal(t, "AVA2412-", g.MonthPrefix(time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)))
}

func TestNextIncrementsStrictly(t *testing.T) {
	reg := &fakeRegistry{taken: map[string]bool{}}
	_, g := setup(t, reg)
	ctx := context.Background()

	var got []string
	for i := 0; i < 3; i++ {
		n, err := g.Next(ctx, jan2025)
		require.NoError(t, err)
		got = append(got, n)
	}

	assert.Equal(t, []string{"AVA2501-00001", "AVA2501-00002", "AVA2501-00003"}, got)
	assert.Equal(t, 1, reg.counts)
}

func TestNextSeedsFromIssuedCount(t *testing.T) {
	reg := &fakeRegistry{taken: map[string]bool{}, issued: 41}
	mr, g := setup(t, reg)

	n, err := g.Next(context.Background(), jan2025)
	require.NoError(t, err)
	assert.Equal(t, "AVA2501-00042", n)

	v, err := mr.Get("case_number:seq:AVA2501-")
	require.NoError(t, err)
	assert.Equal(t, "42", v)
}

func TestNextAppendsSuffixOnCollision(t *testing.T) {
	reg := &fakeRegistry{taken: map[string]bool{"AVA2501-00001": true, "AVA2501-0000107": true}}
	_, g := setup(t, reg)
	suffixes := []int{7, 7, 42}
	g.suffix = func() int {
		s := suffixes[0]
		suffixes = suffixes[1:]
		return s
	}

	n, err := g.Next(context.Background(), jan2025)

	require.NoError(t, err)
	assert.NotEqual(t, "AVA2501-00001", n)
	assert.Equal(t, "AVA2501-0000142", n)
}

func TestNextGivesUpWhenEverySuffixIsTaken(t *testing.T) {
	reg := &fakeRegistry{taken: map[string]bool{"AVA2501-00001": true, "AVA2501-0000100": true}}
	_, g := setup(t, reg)
	g.suffix = func() int { return 0 }

	_, err := g.Next(context.Background(), jan2025)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestNextSurfacesSequenceErrors(t *testing.T) {
	reg := &fakeRegistry{taken: map[string]bool{}}
	mr, g := setup(t, reg)
	mr.Close()

	_, err := g.Next(context.Background(), jan2025)
	assert.Error(t, err)
}
