package devstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s, err := Open(t.TempDir(), zap.NewNop(), func() time.Time { return now })
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, &now
}

func TestTouchPreservesFirstSeen(t *testing.T) {
	s, now := openTestStore(t)
	rec := Record{Address: "046d:c52b:1", Name: "Unifying Receiver", Vendor: 0x046D, Product: 0xC52B}

	require.NoError(t, s.Touch(rec))
	first := *now

	*now = now.Add(time.Hour)
	require.NoError(t, s.Touch(rec))

	got, ok, err := s.Get(rec.Address)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, got.FirstSeen)
	assert.Equal(t, *now, got.LastSeen)
	assert.Equal(t, "Unifying Receiver", got.Name)
}

func TestGetUnknown(t *testing.T) {
	s, _ := openTestStore(t)
	_, ok, err := s.Get("dead:beef:0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.Touch(Record{Address: "0001:0001:0"}))
	require.NoError(t, s.Touch(Record{Address: "0002:0002:0"}))

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0001:0001:0", records[0].Address)
	assert.Equal(t, "0002:0002:0", records[1].Address)
}
