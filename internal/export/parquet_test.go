package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/edtag/internal/domain"
)

func sampleImages() []*domain.Image {
	return []*domain.Image{
		{Ark: "3:1:A", Year: 1930, UTPCode: "AKRON", ImageIndex: 4, Category: "1037259", Eds: domain.NewEdSet("12", "3B")},
		{Ark: "3:1:B", Year: 1930, UTPCode: "AKRON", ImageIndex: 5, Category: "1037259"},
		{Ark: "3:1:C", Year: 1930, UTPCode: "BOSTON", ImageIndex: 0, Category: "1037259", Eds: domain.NewEdSet("1")},
	}
}

func readBack(t *testing.T, path string) []Record {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	info, err := file.Stat()
	require.NoError(t, err)

	pf, err := parquet.OpenFile(file, info.Size())
	require.NoError(t, err)

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	rows := make([]Record, pf.NumRows())
	n, _ := reader.Read(rows)
	return rows[:n]
}

func TestRecords(t *testing.T) {
	records := Records(sampleImages())
	require.Len(t, records, 3)

	assert.Equal(t, Record{Year: 1930, UTPCode: "AKRON", Ark: "3:1:A", ImageIndex: 4, Category: "1037259", Ed: "12", Position: 0}, records[0])
	assert.Equal(t, "3B", records[1].Ed)
	assert.Equal(t, int32(1), records[1].Position)
	assert.Equal(t, "3:1:C", records[2].Ark)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "fs_eds.parquet")

	n, err := WriteFile(path, sampleImages(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, Records(sampleImages()), readBack(t, path))

	// No stray temp files left next to the export
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
