package core

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "line1", uniqueSheetName("line1", used))

	used["line1"] = true
	assert.Equal(t, "line1 (2)", uniqueSheetName("line1", used))
}

func TestUniqueSheetNameMaxLengthDuplicate(t *testing.T) {
	// At 31 runes the suffix has no room unless the base is trimmed first;
	// an untrimmed candidate truncates back to the colliding name.
	name := strings.Repeat("A", 31)
	used := map[string]bool{name: true}

	got := uniqueSheetName(name, used)
	assert.NotEqual(t, name, got)
	assert.False(t, used[got])
	assert.LessOrEqual(t, len([]rune(got)), 31)
	assert.True(t, strings.HasSuffix(got, " (2)"), "got %q", got)

	used[got] = true
	next := uniqueSheetName(name, used)
	assert.False(t, used[next])
	assert.True(t, strings.HasSuffix(next, " (3)"), "got %q", next)
}

func TestPortableCopyCarriesValuesAndStyles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lineA.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("15")
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))
	require.NoError(t, f.SetCellValue("15", "B2", "Stoppage"))

	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("15", "B2", "B2", styleID))
	require.NoError(t, f.SaveAs(src))
	require.NoError(t, f.Close())

	dest := filepath.Join(dir, "consolidated.xlsx")
	copier := &portableCopier{}
	count, err := copier.Copy(context.Background(), CopyJob{
		Sources:   []string{src},
		SheetName: "15",
		DestPath:  dest,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer func() { _ = out.Close() }()

	val, err := out.GetCellValue("lineA", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Stoppage", val)

	outStyleID, err := out.GetCellStyle("lineA", "B2")
	require.NoError(t, err)
	require.NotZero(t, outStyleID, "the source cell's style must come along")

	style, err := out.GetStyle(outStyleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}
