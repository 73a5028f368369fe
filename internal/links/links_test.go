package links_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ruminaider/devlinks/internal/links"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(c *links.Collection) []string {
	var out []string
	for _, e := range c.Entries() {
		out = append(out, e.ID)
	}
	return out
}

// collectionOf returns a collection with n entries whose URLs record their
// original position.
func collectionOf(t *testing.T, n int) *links.Collection {
	t.Helper()
	c := links.New()
	for i := 0; i < n; i++ {
		e := c.Add()
		require.NoError(t, c.Update(e.ID, links.FieldURL, fmt.Sprintf("https://example.com/%d", i)))
	}
	return c
}

func TestAdd(t *testing.T) {
	c := links.New()
	e := c.Add()

	assert.NotEmpty(t, e.ID)
	assert.Empty(t, e.PlatformID)
	assert.Empty(t, e.URL)
	assert.Equal(t, 1, c.Len())

	e2 := c.Add()
	assert.NotEqual(t, e.ID, e2.ID)
	assert.Equal(t, []string{e.ID, e2.ID}, ids(c))
}

func TestRemove(t *testing.T) {
	c := links.New()
	a, b, d := c.Add(), c.Add(), c.Add()

	c.Remove(b.ID)
	assert.Equal(t, []string{a.ID, d.ID}, ids(c))
	assert.Equal(t, 1, c.Index(d.ID), "later entries shift down")

	// Duplicate remove events are harmless.
	c.Remove(b.ID)
	c.Remove("never-existed")
	assert.Equal(t, 2, c.Len())
}

func TestUpdate(t *testing.T) {
	c := links.New()
	a, b := c.Add(), c.Add()

	require.NoError(t, c.Update(a.ID, links.FieldPlatform, "github"))
	require.NoError(t, c.Update(a.ID, links.FieldURL, "https://github.com/x"))

	got, ok := c.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "github", got.PlatformID)
	assert.Equal(t, "https://github.com/x", got.URL)

	other, _ := c.Get(b.ID)
	assert.Empty(t, other.PlatformID, "other entries untouched")

	err := c.Update("missing", links.FieldURL, "x")
	assert.ErrorIs(t, err, links.ErrNotFound)

	err = c.Update(a.ID, links.Field("label"), "x")
	assert.ErrorIs(t, err, links.ErrUnknownField)
}

func TestSwap(t *testing.T) {
	t.Run("forward shifts intermediates", func(t *testing.T) {
		c := collectionOf(t, 4)
		before := ids(c)
		require.NoError(t, c.Swap(0, 2))
		assert.Equal(t, []string{before[1], before[2], before[0], before[3]}, ids(c))
	})

	t.Run("backward shifts intermediates", func(t *testing.T) {
		c := collectionOf(t, 4)
		before := ids(c)
		require.NoError(t, c.Swap(3, 1))
		assert.Equal(t, []string{before[0], before[3], before[1], before[2]}, ids(c))
	})

	t.Run("same index is a no-op", func(t *testing.T) {
		c := collectionOf(t, 3)
		before := c.Entries()
		require.NoError(t, c.Swap(1, 1))
		assert.Equal(t, before, c.Entries())
	})

	t.Run("out of range", func(t *testing.T) {
		c := collectionOf(t, 2)
		for _, pair := range [][2]int{{-1, 0}, {0, 2}, {2, 0}, {0, -1}} {
			err := c.Swap(pair[0], pair[1])
			var rangeErr *links.RangeError
			require.ErrorAs(t, err, &rangeErr, "%v", pair)
			assert.Equal(t, 2, rangeErr.Len)
		}
	})

	t.Run("contents travel with entry", func(t *testing.T) {
		c := collectionOf(t, 3)
		first, _ := c.At(0)
		require.NoError(t, c.Swap(0, 2))
		moved, err := c.At(2)
		require.NoError(t, err)
		assert.Equal(t, first, moved)
	})
}

func TestSwap_Involution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 2; n <= 8; n++ {
		c := collectionOf(t, n)
		for trial := 0; trial < 20; trial++ {
			i, j := rng.Intn(n), rng.Intn(n)
			before := c.Entries()
			require.NoError(t, c.Swap(i, j))
			require.NoError(t, c.Swap(j, i))
			assert.Equal(t, before, c.Entries(), "n=%d swap(%d,%d)", n, i, j)
		}
	}
}

func TestDrop(t *testing.T) {
	c := collectionOf(t, 3)
	before := ids(c)

	require.NoError(t, c.Drop(0, 10))
	assert.Equal(t, []string{before[1], before[2], before[0]}, ids(c), "past the end clamps to last")

	require.NoError(t, c.Drop(2, -5))
	assert.Equal(t, before, ids(c), "before the start clamps to first")

	require.NoError(t, c.Drop(1, 1))
	assert.Equal(t, before, ids(c))

	var rangeErr *links.RangeError
	assert.ErrorAs(t, c.Drop(3, 0), &rangeErr)
}

func TestIDsUniqueAndStable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := links.New()
	seen := map[string]bool{}

	for step := 0; step < 500; step++ {
		if c.Len() > 0 && rng.Intn(3) == 0 {
			snapshot := c.Entries()
			victim := snapshot[rng.Intn(len(snapshot))]
			c.Remove(victim.ID)

			// Survivors keep their ids and contents.
			for _, e := range snapshot {
				if e.ID == victim.ID {
					continue
				}
				got, ok := c.Get(e.ID)
				require.True(t, ok)
				assert.Equal(t, e, got)
			}
			continue
		}
		e := c.Add()
		require.False(t, seen[e.ID], "id %s reused", e.ID)
		seen[e.ID] = true
	}

	unique := map[string]bool{}
	for _, id := range ids(c) {
		require.False(t, unique[id])
		unique[id] = true
	}
}

func TestIDsNeverReused_AfterRemove(t *testing.T) {
	c := links.New()
	n := 0
	c.SetIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})

	a := c.Add()
	c.Remove(a.ID)
	b := c.Add()
	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, "id-2", b.ID)
}

func TestEntries_IsSnapshot(t *testing.T) {
	c := links.New()
	e := c.Add()

	view := c.Entries()
	view[0].URL = "https://mutated.example.com"

	got, _ := c.Get(e.ID)
	assert.Empty(t, got.URL)
}

func TestRecordsRoundTrip(t *testing.T) {
	records := []links.Record{
		{PlatformID: "github", URL: "https://github.com/ada"},
		{PlatformID: "", URL: ""},
	}
	c := links.NewFromRecords(records)
	assert.Equal(t, records, c.Records())

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestEndToEndScenario(t *testing.T) {
	c := links.New()
	l1 := c.Add()
	l2 := c.Add()

	require.NoError(t, c.Update(l1.ID, links.FieldPlatform, "github"))
	require.NoError(t, c.Update(l1.ID, links.FieldURL, "https://github.com/x"))
	require.NoError(t, c.Swap(0, 1))

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, l2.ID, entries[0].ID)
	assert.Equal(t, l1.ID, entries[1].ID)
	assert.Equal(t, "github", entries[1].PlatformID)
	assert.Equal(t, "https://github.com/x", entries[1].URL)
}
