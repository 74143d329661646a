// AngelaMos | 2026
// store_test.go

package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir())
	require.NoError(t, err)

	return s
}

func TestEnsureCollectionsCreatesEmptyArrays(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.EnsureCollections())

	for _, name := range collectionFiles {
		data, err := os.ReadFile(filepath.Join(s.Dir(), name))
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	}

	// Running again must not disturb existing files.
	require.NoError(
		t,
		os.WriteFile(
			filepath.Join(s.Dir(), UsersFile),
			[]byte(`[{"id":"u1","name":"x"}]`),
			0o644,
		),
	)
	require.NoError(t, s.EnsureCollections())

	data, err := os.ReadFile(filepath.Join(s.Dir(), UsersFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "u1")
}

func TestCollectionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	c := NewCollection[testRecord](s, "records.json")
	ctx := context.Background()

	records, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	want := []testRecord{
		{ID: "a", Name: "first"},
		{ID: "b", Name: "second"},
	}
	require.NoError(t, c.Save(ctx, want))

	got, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCollectionWritesIndentedJSON(t *testing.T) {
	s := newTestStore(t)
	c := NewCollection[testRecord](s, "records.json")

	require.NoError(
		t,
		c.Save(context.Background(), []testRecord{{ID: "a", Name: "first"}}),
	)

	data, err := os.ReadFile(filepath.Join(s.Dir(), "records.json"))
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n  {"))
	assert.True(t, strings.HasSuffix(text, "\n"))
}

func TestCollectionUpdateAppliesMutation(t *testing.T) {
	s := newTestStore(t)
	c := NewCollection[testRecord](s, "records.json")
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, []testRecord{{ID: "a", Name: "first"}}))

	err := c.Update(ctx, func(items []testRecord) ([]testRecord, error) {
		return append(items, testRecord{ID: "b", Name: "second"}), nil
	})
	require.NoError(t, err)

	got, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].ID)
}

func TestCollectionUpdateErrorLeavesFileUntouched(t *testing.T) {
	s := newTestStore(t)
	c := NewCollection[testRecord](s, "records.json")
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, []testRecord{{ID: "a", Name: "first"}}))

	err := c.Update(ctx, func(items []testRecord) ([]testRecord, error) {
		return nil, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestStatsCountsRecords(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureCollections())

	c := NewCollection[testRecord](s, UsersFile)
	require.NoError(t, c.Save(context.Background(), []testRecord{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}))

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats[UsersFile])
	assert.Equal(t, 0, stats[ImagesFile])
}

func TestPingReportsWritableDir(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}
