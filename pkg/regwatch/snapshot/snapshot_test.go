package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/output"
)

func TestFileLoadMissing(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), "temp.json"))

	records, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, records)
}

func TestFileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "nested", "temp.json")
	s := NewFile(path)

	records := []models.Purchase{
		{RegistryNumber: "1", Region: "Москва", Status: "идем", MaxPrice: 1000.5},
		{RegistryNumber: "2", Status: "расчет", BiddingDateTime: "2021-11-16T10:10:00Z"},
	}
	require.NoError(t, s.Save(records))

	loaded, ok, err := s.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, records, loaded)

	require.NoError(t, s.Save(records[:1]))
	loaded, _, err = s.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are renamed away")
}

func TestFileSaveEmpty(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), "temp.json"))
	require.NoError(t, s.Save(nil))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	records, ok, err := s.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, records)
}

func TestFileLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temp.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, _, err := NewFile(path).Load()
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, output.ErrSerialization)
}

func TestFileRemove(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), "temp.json"))
	require.NoError(t, s.Remove(), "removing a missing snapshot")

	require.NoError(t, s.Save(nil))
	require.NoError(t, s.Remove())

	_, err := os.Stat(s.Path)
	assert.True(t, os.IsNotExist(err))
}
