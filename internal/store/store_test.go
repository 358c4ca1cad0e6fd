package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpen_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)
	require.NoError(t, s.Append(ctx, Snapshot{Timestamp: "2024-05-01 12:00:00", BTCPrice: 1, ETHPrice: 2}))

	require.NoError(t, s.Migrate(ctx))

	again, err := Open(ctx, path)
	require.NoError(t, err)
	defer again.Close()

	rows, err := again.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOpen_Unwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "prices.db")

	_, err := Open(context.Background(), path)
	require.Error(t, err)
}

func TestListAll_Empty(t *testing.T) {
	s, _ := openTestStore(t)

	rows, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAppendAndListAll_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	inputs := []Snapshot{
		{Timestamp: "2024-05-01 12:00:01", BTCPrice: 50000, ETHPrice: 3000},
		{Timestamp: "2024-05-01 09:30:00", BTCPrice: 49000, ETHPrice: 2900},
		{Timestamp: "2024-05-02 00:00:00", BTCPrice: 51000.5, ETHPrice: 3100.25},
		{Timestamp: "2024-05-01 12:00:01", BTCPrice: 50001, ETHPrice: 3001},
	}
	for _, snap := range inputs {
		require.NoError(t, s.Append(ctx, snap))
	}

	rows, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, len(inputs))

	assert.Equal(t, inputs[2], rows[0])
	assert.Equal(t, "2024-05-01 09:30:00", rows[len(rows)-1].Timestamp)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Timestamp, rows[i].Timestamp)
	}
}

func TestAppend_ExactValues(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)
	snap := NewSnapshot(time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local), 50000.00, 3000.00)

	require.NoError(t, s.Append(ctx, snap))

	rows, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Snapshot{Timestamp: "2024-05-01 12:00:00", BTCPrice: 50000, ETHPrice: 3000}, rows[0])
}

func TestSnapshot_Formatting(t *testing.T) {
	snap := Snapshot{Timestamp: "2024-05-01 12:00:00", BTCPrice: 50000, ETHPrice: 3000.126}

	assert.Equal(t, "2024-05-01 12:00:00 | BTC: $50000.00 | ETH: $3000.13", snap.HistoryLine())
	assert.Equal(t, "2024-05-01 12:00:00\nBTC: $50000.00, ETH: $3000.13\n\n", snap.JournalEntry())
}

func TestJournal_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remember.txt")
	j := NewJournal(path)

	require.NoError(t, j.Append(Snapshot{Timestamp: "2024-05-01 12:00:00", BTCPrice: 50000, ETHPrice: 3000}))
	require.NoError(t, j.Append(Snapshot{Timestamp: "2024-05-01 12:00:05", BTCPrice: 50010, ETHPrice: 3001}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"2024-05-01 12:00:00\nBTC: $50000.00, ETH: $3000.00\n\n"+
			"2024-05-01 12:00:05\nBTC: $50010.00, ETH: $3001.00\n\n",
		string(data))
}

func TestJournal_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultJournalPath, NewJournal("").Path())
}

func TestJournal_AppendFails(t *testing.T) {
	j := NewJournal(filepath.Join(t.TempDir(), "nope", "remember.txt"))

	err := j.Append(Snapshot{Timestamp: "2024-05-01 12:00:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open journal")
}
