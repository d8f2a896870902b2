package universe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"AAPL", "AAPL", true},
		{" msft ", "MSFT", true},
		{"BRK.B", "BRK-B", true},
		{"BRK-B", "BRK-B", true},
		{"ABC.W", "", false}, // warrant
		{"ABC.U", "", false}, // unit
		{"ABC.R", "", false}, // right
		{"ABC-P", "", false}, // preferred
		{"AB$", "", false},
		{"AB#C", "", false},
		{"TOOLONGG", "", false},
		{"9LIVES", "", false}, // must start with a letter
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestFilter_DedupesAndSorts(t *testing.T) {
	got := Filter([]string{"MSFT", "aapl", "AAPL", "BRK.B", "ABC.W", "GOOG"})
	assert.Equal(t, []string{"AAPL", "BRK-B", "GOOG", "MSFT"}, got)
}

func TestFilter_Idempotent(t *testing.T) {
	raw := []string{"zz", "BRK.B", "T", "t", "XYZ.U", "A1-B"}
	once := Filter(raw)
	twice := Filter(once)
	assert.Equal(t, once, twice)
}

func TestFromCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tickers.csv")
	data := "Name,Symbol,Exchange\nApple,AAPL,NASDAQ\nBerkshire,BRK.B,NYSE\nWarrant,ABC.W,NYSE\nApple dup,AAPL,NASDAQ\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	got, err := FromCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "BRK-B"}, got)
}

func TestFromCSV_MissingFile(t *testing.T) {
	_, err := FromCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestFromCSV_NoSymbolColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Exchange\nApple,NASDAQ\n"), 0o644))

	_, err := FromCSV(path)
	assert.ErrorContains(t, err, "Symbol")
}
