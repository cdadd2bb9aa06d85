package ledger_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mkuznets.com/go/ytpublish/internal/ledger"
)

func openLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, l.Init())
	t.Cleanup(func() { assert.NoError(t, l.Close()) })
	return l
}

func TestPutAndMapInPublishingOrder(t *testing.T) {
	l := openLedger(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, l.Put(&ledger.Video{ID: "second", Title: "B", PublishedAt: base.Add(time.Hour)}))
	require.NoError(t, l.Put(&ledger.Video{ID: "first", Title: "A", PublishedAt: base}))

	var ids []string
	require.NoError(t, l.Map(func(v *ledger.Video) error {
		ids = append(ids, v.ID)
		return nil
	}))
	assert.Equal(t, []string{"first", "second"}, ids)

	n, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMapOrdersSubSecondTimes(t *testing.T) {
	l := openLedger(t)

	base := time.Date(2024, 3, 1, 12, 0, 5, 0, time.UTC)
	for _, ms := range []int{0, 500, 100, 120} {
		offset := time.Duration(ms) * time.Millisecond
		require.NoError(t, l.Put(&ledger.Video{ID: offset.String(), PublishedAt: base.Add(offset)}))
	}

	var ids []string
	require.NoError(t, l.Map(func(v *ledger.Video) error {
		ids = append(ids, v.ID)
		return nil
	}))
	assert.Equal(t, []string{"0s", "100ms", "120ms", "500ms"}, ids)
}

func TestPutDefaultsTime(t *testing.T) {
	l := openLedger(t)

	v := &ledger.Video{ID: "abc"}
	require.NoError(t, l.Put(v))
	assert.False(t, v.PublishedAt.IsZero())

	assert.Error(t, l.Put(&ledger.Video{}))
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	l := ledger.New(path)
	require.NoError(t, l.Init())
	require.NoError(t, l.Put(&ledger.Video{ID: "persisted"}))
	require.NoError(t, l.Close())

	l = ledger.New(path)
	require.NoError(t, l.Init())
	defer l.Close()

	n, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRow(t *testing.T) {
	v := &ledger.Video{
		ID:          "dQw4w9WgXcQ",
		Title:       strings.Repeat("long title ", 10) + "\nsecond line",
		Privacy:     "private",
		PublishedAt: time.Now(),
	}
	row := v.Row()
	assert.NotContains(t, row, "\n")
	assert.Contains(t, row, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	assert.Contains(t, row, "...")
	assert.Len(t, strings.Split(row, "\t"), 5)
}
