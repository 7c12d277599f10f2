package parser

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/moment"
)

const registrySheet = "Реестр"

// registryLayout places each field in its own column of registrySheet.
var registryLayout = map[models.Field]string{
	models.FieldRegistryNumber: "A",
	models.FieldSubject:        "B",
	models.FieldRegion:         "C",
	models.FieldStatus:         "D",
	models.FieldMaxPrice:       "E",
	models.FieldBiddingDate:    "F",
	models.FieldBiddingTime:    "G",
	models.FieldParticipants:   "H",
	models.FieldWinner:         "I",
	models.FieldWinnerPrice:    "J",
	models.FieldCollectionDate: "K",
	models.FieldCollectionTime: "L",
}

type testRow map[models.Field]any

// writeRegistry saves a workbook with one defined name per layout column
// and reopens it from disk.
func writeRegistry(t *testing.T, rows []testRow) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", registrySheet))

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	timeStyle, err := f.NewStyle(&excelize.Style{NumFmt: 21})
	require.NoError(t, err)

	for field, col := range registryLayout {
		require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
			Name:     field.Label(),
			RefersTo: fmt.Sprintf("%s!$%s:$%s", registrySheet, col, col),
		}))
		require.NoError(t, f.SetCellValue(registrySheet, col+"1", field.Label()))
	}

	for i, row := range rows {
		for field, value := range row {
			cell := fmt.Sprintf("%s%d", registryLayout[field], i+2)
			require.NoError(t, f.SetCellValue(registrySheet, cell, value))
			switch field {
			case models.FieldBiddingDate, models.FieldCollectionDate:
				require.NoError(t, f.SetCellStyle(registrySheet, cell, cell, dateStyle))
			case models.FieldBiddingTime, models.FieldCollectionTime:
				require.NoError(t, f.SetCellStyle(registrySheet, cell, cell, timeStyle))
			}
		}
	}

	path := filepath.Join(t.TempDir(), "registry.xlsx")
	require.NoError(t, f.SaveAs(path))

	f2, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f2.Close() })
	return f2
}

func resolveTestColumns(t *testing.T, f *excelize.File) models.ColumnMap {
	t.Helper()
	cols, err := ResolveColumns(NamedRanges(f))
	require.NoError(t, err)
	return cols
}

// today is 2021-11-20 as a serial date.
const today = 44520.0

func testOptions() RecordOptions {
	opts := DefaultRecordOptions()
	opts.Today = today
	return opts
}

func TestExtractRecords(t *testing.T) {
	f := writeRegistry(t, []testRow{
		{
			models.FieldRegistryNumber: "№0373100000121000123",
			models.FieldSubject:        "  Поставка бумаги ",
			models.FieldRegion:         "Москва",
			models.FieldStatus:         "идем",
			models.FieldMaxPrice:       1500000.75,
			models.FieldBiddingDate:    44516,
			models.FieldBiddingTime:    0.4236111111111111,
			models.FieldParticipants:   "ООО Ромашка",
		},
		{
			models.FieldRegistryNumber: "0373100000121000124",
			models.FieldStatus:         "отказ",
			models.FieldBiddingDate:    44516,
		},
		{
			models.FieldRegistryNumber: 32110887766,
			models.FieldStatus:         " выиграли ",
			models.FieldWinner:         "ООО Ромашка",
			models.FieldWinnerPrice:    990000,
		},
	})

	records, err := ExtractRecords(f, registrySheet, resolveTestColumns(t, f), testOptions())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "0373100000121000123", first.RegistryNumber)
	assert.Equal(t, "Поставка бумаги", first.Subject)
	assert.Equal(t, "Москва", first.Region)
	assert.Equal(t, "идем", first.Status)
	assert.InDelta(t, 1500000.75, first.MaxPrice, 1e-9)
	assert.Equal(t, "2021-11-16T10:10:00Z", first.BiddingDateTime)
	assert.Equal(t, "ООО Ромашка", first.Participants)
	assert.Empty(t, first.Winner)
	assert.Empty(t, first.CollectionDeadline)
	assert.Empty(t, first.ApprovalDeadline, "unresolved field yields a zero value")

	second := records[1]
	assert.Equal(t, "32110887766", second.RegistryNumber)
	assert.Equal(t, "выиграли", second.Status)
	assert.Equal(t, "ООО Ромашка", second.Winner)
	assert.InDelta(t, 990000, second.WinnerPrice, 1e-9)
	assert.Empty(t, second.BiddingDateTime)
}

func TestExtractRecordsCoercion(t *testing.T) {
	f := writeRegistry(t, []testRow{
		{
			models.FieldRegistryNumber: "1",
			models.FieldStatus:         "расчет",
			models.FieldSubject:        42,
			models.FieldMaxPrice:       "по запросу",
			models.FieldRegion:         true,
		},
	})

	records, err := ExtractRecords(f, registrySheet, resolveTestColumns(t, f), testOptions())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Empty(t, records[0].Subject, "numbers in a text field become empty")
	assert.Zero(t, records[0].MaxPrice, "text in a numeric field becomes zero")
	assert.Empty(t, records[0].Region)
}

func TestExtractRecordsLookback(t *testing.T) {
	f := writeRegistry(t, []testRow{
		{models.FieldRegistryNumber: "fresh", models.FieldStatus: "идем", models.FieldBiddingDate: today - 3},
		{models.FieldRegistryNumber: "edge", models.FieldStatus: "идем", models.FieldBiddingDate: today - 16},
		{models.FieldRegistryNumber: "old", models.FieldStatus: "идем", models.FieldBiddingDate: today - 17},
		{models.FieldRegistryNumber: "undated", models.FieldStatus: "идем"},
	})
	cols := resolveTestColumns(t, f)

	records, err := ExtractRecords(f, registrySheet, cols, testOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh", "edge", "undated"}, registryNumbers(records))

	opts := testOptions()
	opts.LookbackDays = 0
	records, err = ExtractRecords(f, registrySheet, cols, opts)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestExtractRecordsSkipsBadRows(t *testing.T) {
	f := writeRegistry(t, []testRow{
		{models.FieldRegistryNumber: "A-1", models.FieldStatus: "идем", models.FieldRegion: "Тверь"},
		{models.FieldStatus: "идем"},
		{models.FieldRegistryNumber: "№A-1", models.FieldStatus: "допущены", models.FieldRegion: "Псков"},
	})

	type warning struct {
		row int
		msg string
	}
	var warnings []warning
	opts := testOptions()
	opts.Warn = func(row int, msg string) { warnings = append(warnings, warning{row, msg}) }

	records, err := ExtractRecords(f, registrySheet, resolveTestColumns(t, f), opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Тверь", records[0].Region, "first row of a duplicate wins")

	require.Len(t, warnings, 2)
	assert.Equal(t, 3, warnings[0].row)
	assert.Contains(t, warnings[0].msg, "no registry number")
	assert.Equal(t, 4, warnings[1].row)
	assert.Contains(t, warnings[1].msg, "row 2")
}

func TestExtractRecordsRowLimit(t *testing.T) {
	rows := make([]testRow, 5)
	for i := range rows {
		rows[i] = testRow{models.FieldRegistryNumber: fmt.Sprintf("N%d", i), models.FieldStatus: "заявлены"}
	}
	f := writeRegistry(t, rows)

	opts := testOptions()
	opts.MaxRows = 3
	records, err := ExtractRecords(f, registrySheet, resolveTestColumns(t, f), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"N0", "N1"}, registryNumbers(records))
}

func TestExtractRecordsNoActiveRows(t *testing.T) {
	f := writeRegistry(t, []testRow{
		{models.FieldRegistryNumber: "1", models.FieldStatus: "отменена"},
	})

	records, err := ExtractRecords(f, registrySheet, resolveTestColumns(t, f), testOptions())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractRecordsStatusMissing(t *testing.T) {
	f := writeRegistry(t, nil)

	var cols models.ColumnMap
	cols.Set(models.FieldRegistryNumber, 0)

	_, err := ExtractRecords(f, registrySheet, cols, testOptions())
	assert.ErrorIs(t, err, ErrStatusColumnMissing)
}

func TestExtractRecordsZoneAndCombine(t *testing.T) {
	f := writeRegistry(t, []testRow{
		{
			models.FieldRegistryNumber: "1",
			models.FieldStatus:         "идем",
			models.FieldCollectionDate: 44516,
			models.FieldCollectionTime: 44517.25,
		},
	})
	cols := resolveTestColumns(t, f)

	opts := testOptions()
	opts.Zone = moment.FixedZone(180)
	records, err := ExtractRecords(f, registrySheet, cols, opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2021-11-17T06:00:00+03:00", records[0].CollectionDeadline,
		"a time cell holding a full timestamp wins")

	opts.Combine = moment.CombineReplace
	records, err = ExtractRecords(f, registrySheet, cols, opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2021-11-16T06:00:00+03:00", records[0].CollectionDeadline)
}

func TestActiveStatuses(t *testing.T) {
	for _, s := range ActiveStatuses() {
		assert.True(t, IsActiveStatus(s), s)
	}
	assert.True(t, IsActiveStatus(" идем\t"))
	assert.False(t, IsActiveStatus("Идем"))
	assert.False(t, IsActiveStatus(models.StatusInactive))
	assert.False(t, IsActiveStatus(""))
}

func registryNumbers(records []models.Purchase) []string {
	numbers := make([]string, len(records))
	for i, r := range records {
		numbers[i] = r.RegistryNumber
	}
	return numbers
}
