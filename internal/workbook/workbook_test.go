package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fjacquet/alert-extract/internal/extractor"
	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/table"
)

func render(t *testing.T, autoSize bool, tables ...*table.Table) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewWriter(logging.NewMockLogger(), autoSize).Write(&buf, tables))
	return buf.Bytes()
}

func TestWrite_RoundTripExtraction(t *testing.T) {
	res, err := extractor.New(logging.NewMockLogger()).ExtractString("alert.xml", `<Alert>
		<Id>A-1</Id>
		<Transaction><Amount>100</Amount><Currency>USD</Currency></Transaction>
		<Transaction><Amount>50</Amount></Transaction>
	</Alert>`)
	require.NoError(t, err)

	sheets, err := ReadSheets(bytes.NewReader(render(t, true, res.Tables()...)))
	require.NoError(t, err)
	require.Len(t, sheets, 3)

	assert.Equal(t, extractor.SheetAlertDetails, sheets[0].Name)
	assert.Equal(t, extractor.SheetTransactions, sheets[1].Name)
	assert.Equal(t, extractor.SheetEntities, sheets[2].Name)

	assert.Equal(t, []string{"Field", "Value"}, sheets[0].Rows[0])
	assert.Equal(t, []string{"Id", "A-1"}, sheets[0].Rows[1])

	assert.Equal(t, [][]string{
		{"Amount", "Currency"},
		{"100", "USD"},
		{"50"},
	}, sheets[1].Rows)

	assert.Empty(t, sheets[2].Rows)
}

func TestWrite_AbsentCellsLeftBlank(t *testing.T) {
	b := table.NewBuilder("Data")
	b.AddColumn("A")
	b.AddColumn("B")
	b.AddRow(map[string]string{"B": "only-b"})
	b.AddRow(map[string]string{"A": ""})

	raw := render(t, false, b.Build())
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, []string{"", "only-b"}, rows[1])

	v, err := f.GetCellValue("Data", "B2")
	require.NoError(t, err)
	assert.Equal(t, "only-b", v)

	v, err = f.GetCellValue("Data", "A3")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestWrite_HeaderIsBold(t *testing.T) {
	b := table.NewBuilder("Data")
	b.AddColumn("Name")
	b.AddRow(map[string]string{"Name": "x"})

	f, err := excelize.OpenReader(bytes.NewReader(render(t, true, b.Build())))
	require.NoError(t, err)
	defer f.Close()

	id, err := f.GetCellStyle("Data", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWrite_AutoSizedWidthsAreClamped(t *testing.T) {
	b := table.NewBuilder("Data")
	b.AddColumn("A")
	b.AddColumn("Long")
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	b.AddRow(map[string]string{"A": "1", "Long": string(long)})

	f, err := excelize.OpenReader(bytes.NewReader(render(t, true, b.Build())))
	require.NoError(t, err)
	defer f.Close()

	w, err := f.GetColWidth("Data", "A")
	require.NoError(t, err)
	assert.Equal(t, float64(minColumnWidth), w)

	w, err = f.GetColWidth("Data", "B")
	require.NoError(t, err)
	assert.Equal(t, float64(maxColumnWidth), w)
}

func TestWrite_NoTables(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(nil, true).Write(&buf, nil)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestWrite_LogsPerSheet(t *testing.T) {
	logger := logging.NewMockLogger()
	var buf bytes.Buffer
	require.NoError(t, NewWriter(logger, false).Write(&buf, []*table.Table{
		table.NewBuilder("One").Build(),
		table.NewBuilder("Two").Build(),
	}))

	entries := logger.GetEntriesByLevel("DEBUG")
	require.Len(t, entries, 2)
	for i, want := range []string{"One", "Two"} {
		v, ok := entries[i].FieldValue(logging.FieldSheet)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
}

func TestClampWidth(t *testing.T) {
	assert.Equal(t, 8.0, clampWidth(0))
	assert.Equal(t, 12.0, clampWidth(10))
	assert.Equal(t, 80.0, clampWidth(500))
}
