package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestStore creates an initialized store backed by a throwaway file.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "piscanner-test.db"))
	require.NoError(t, err, "failed to open test database")

	err = s.Init()
	require.NoError(t, err, "failed to init test database")

	return s
}

func TestInsertAndRead(t *testing.T) {
	s := setupTestStore(t)

	err := s.Insert("44Xabcdefgh")
	require.NoError(t, err)

	records, err := s.Read(50, true)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "44Xabcdefgh", records[0].Barcode)
	assert.Equal(t, StatusScanned, records[0].Status)
	assert.Nil(t, records[0].CompletedAt)
	assert.True(t, records[0].Pending())
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestInsertEmptyBarcode(t *testing.T) {
	s := setupTestStore(t)

	err := s.Insert("")
	require.ErrorIs(t, err, ErrEmptyBarcode)
}

func TestReadOrderAndLimit(t *testing.T) {
	s := setupTestStore(t)

	for _, barcode := range []string{"first", "second", "third"} {
		require.NoError(t, s.Insert(barcode))
	}

	records, err := s.Read(2, false)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Most recent first.
	assert.Equal(t, "third", records[0].Barcode)
	assert.Equal(t, "second", records[1].Barcode)
}

func TestSetStatusBatch(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Insert("code"))
	}

	err := s.SetStatusBatch(map[string][]uint64{
		StatusAccepted:       {1, 2},
		StatusInvalidBarcode: {3},
	})
	require.NoError(t, err)

	records, err := s.Read(50, false)
	require.NoError(t, err)
	require.Len(t, records, 4)

	byID := make(map[uint64]Barcode, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	for _, id := range []uint64{1, 2} {
		assert.Equal(t, StatusAccepted, byID[id].Status)
		assert.NotNil(t, byID[id].CompletedAt)
	}

	assert.Equal(t, StatusInvalidBarcode, byID[3].Status)
	assert.NotNil(t, byID[3].CompletedAt)

	// Unlisted ids are unaffected.
	assert.Equal(t, StatusScanned, byID[4].Status)
	assert.Nil(t, byID[4].CompletedAt)

	pending, err := s.Read(50, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint64(4), pending[0].ID)
}

func TestSetStatusBatchTransitionsOnce(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Insert("44Xabcdefgh"))

	require.NoError(t, s.SetStatusBatch(map[string][]uint64{
		StatusAccepted: {1},
	}))

	records, err := s.Read(50, false)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].CompletedAt)

	completedAt := *records[0].CompletedAt

	// A stale id in a later batch must not rewrite the terminal outcome.
	require.NoError(t, s.SetStatusBatch(map[string][]uint64{
		StatusInvalidBarcode: {1},
	}))

	records, err = s.Read(50, false)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, StatusAccepted, records[0].Status)
	require.NotNil(t, records[0].CompletedAt)
	assert.Equal(t, completedAt, *records[0].CompletedAt)
}

func TestSetStatusBatchEmpty(t *testing.T) {
	s := setupTestStore(t)

	assert.NoError(t, s.SetStatusBatch(nil))
	assert.NoError(t, s.SetStatusBatch(map[string][]uint64{StatusAccepted: {}}))
}

func TestSetSettingsIdempotent(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SetSettings(map[string]string{"K": "V"}))
	require.NoError(t, s.SetSettings(map[string]string{"K": "V"}))

	var count int64
	err := s.db.Model(&Setting{}).Where("key = ?", "K").Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	settings, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, "V", settings["K"])
}

func TestSettingsMergedOverDefaults(t *testing.T) {
	s := setupTestStore(t)

	settings, err := s.Settings()
	require.NoError(t, err)

	// Seeded defaults are present.
	assert.Equal(t, "https://rotostampa.com", settings[KeyServerHost])
	assert.Equal(t, "barcode", settings[KeyFieldBarcode])
	assert.NotEmpty(t, settings[KeyMachineUUID])

	// Overwriting a default sticks.
	require.NoError(t, s.SetSettings(map[string]string{KeyServerHost: "https://example.com"}))

	settings, err = s.Settings()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", settings[KeyServerHost])
}

func TestInitDoesNotOverwriteSettings(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SetSettings(map[string]string{KeyServerToken: "secret"}))

	before, err := s.Settings()
	require.NoError(t, err)

	// A second Init must keep operator state, including the machine UUID.
	require.NoError(t, s.Init())

	after, err := s.Settings()
	require.NoError(t, err)

	assert.Equal(t, "secret", after[KeyServerToken])
	assert.Equal(t, before[KeyMachineUUID], after[KeyMachineUUID])
}

func TestCountPendingGraceWindow(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Insert("fresh"))

	// A just-inserted record is inside the grace window.
	count, err := s.CountPending(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Backdate the record past the window.
	backdate(t, s.db, "fresh", 10*time.Second)

	count, err = s.CountPending(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Terminal records never count.
	require.NoError(t, s.SetStatusBatch(map[string][]uint64{StatusAccepted: {1}}))

	count, err = s.CountPending(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPurgeOlderThan(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Insert("old"))
	require.NoError(t, s.Insert("new"))

	backdate(t, s.db, "old", 48*time.Hour)

	deleted, err := s.PurgeOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	records, err := s.Read(50, false)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "new", records[0].Barcode)
}

// backdate shifts a record's creation time into the past.
func backdate(t *testing.T, db *gorm.DB, barcode string, age time.Duration) {
	t.Helper()

	err := db.Model(&Barcode{}).
		Where("barcode = ?", barcode).
		Update("created_at", time.Now().UTC().Add(-age)).Error
	require.NoError(t, err)
}
