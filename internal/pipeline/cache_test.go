package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/venus-data/internal/domain"
)

type countingGenerator struct {
	calls int
	err   error
}

func (g *countingGenerator) NewDataset(t domain.DataType, r domain.YearRange, seed uint64) (domain.Dataset, error) {
	g.calls++
	if g.err != nil {
		return domain.Dataset{}, g.err
	}
	return domain.Dataset{Type: t, Range: r, Seed: seed}, nil
}

var testRange = domain.YearRange{Start: 2000, End: 2004}

// --- CachedGenerator tests ---

func TestCachedGenerator_Hit(t *testing.T) {
	inner := &countingGenerator{}
	cached := NewCachedGenerator(inner, 10)

	first, err := cached.NewDataset(domain.CloudCover, testRange, 7)
	require.NoError(t, err)
	second, err := cached.NewDataset(domain.CloudCover, testRange, 7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 1, cached.Len())
}

func TestCachedGenerator_DifferentKeysMiss(t *testing.T) {
	inner := &countingGenerator{}
	cached := NewCachedGenerator(inner, 10)

	_, _ = cached.NewDataset(domain.CloudCover, testRange, 7)
	_, _ = cached.NewDataset(domain.CloudCover, testRange, 8)
	_, _ = cached.NewDataset(domain.Temperature, testRange, 7)
	_, _ = cached.NewDataset(domain.CloudCover, domain.YearRange{Start: 2000, End: 2005}, 7)

	assert.Equal(t, 4, inner.calls)
}

func TestCachedGenerator_ErrorsNotCached(t *testing.T) {
	inner := &countingGenerator{err: errors.New("boom")}
	cached := NewCachedGenerator(inner, 10)

	_, err := cached.NewDataset(domain.CloudCover, testRange, 7)
	require.Error(t, err)
	_, err = cached.NewDataset(domain.CloudCover, testRange, 7)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Zero(t, cached.Len())
}

func TestCachedGenerator_RealGeneratorDeterministic(t *testing.T) {
	cached := NewCachedGenerator(domain.NewGenerator(nil), 4)

	ds, err := cached.NewDataset(domain.SolarRadiation, testRange, 3)
	require.NoError(t, err)
	again, err := cached.NewDataset(domain.SolarRadiation, testRange, 3)
	require.NoError(t, err)

	assert.Equal(t, ds.ID, again.ID)
	assert.Len(t, again.Records, testRange.Years())
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", domain.Dataset{ID: "A"})
	c.put("b", domain.Dataset{ID: "B"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", result.ID)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.Dataset{ID: "A"})
	c.put("b", domain.Dataset{ID: "B"})
	c.put("c", domain.Dataset{ID: "C"}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", result.ID)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", result.ID)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.Dataset{ID: "A"})
	c.put("b", domain.Dataset{ID: "B"})

	c.get("a")
	c.put("c", domain.Dataset{ID: "C"})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.Dataset{ID: "A1"})
	c.put("a", domain.Dataset{ID: "A2"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", result.ID)
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_MinimumSize(t *testing.T) {
	c := newLRUCache(0)
	c.put("a", domain.Dataset{ID: "A"})

	_, ok := c.get("a")
	assert.True(t, ok)
}
