package extractor

import (
	"github.com/beevik/etree"

	"fjacquet/alert-extract/internal/table"
	"fjacquet/alert-extract/internal/xmlutils"
)

// Alert Details header.
const (
	ColumnField = "Field"
	ColumnValue = "Value"
)

// AlertDetails lists the direct children of alert as Field/Value rows in
// document order. Repeated tags produce repeated rows. A nil alert yields
// the header alone.
func AlertDetails(name string, alert *etree.Element) *table.Table {
	b := table.NewBuilder(name)
	b.AddColumn(ColumnField)
	b.AddColumn(ColumnValue)

	for _, child := range xmlutils.ChildElements(alert) {
		b.AddRow(map[string]string{
			ColumnField: xmlutils.TagName(child),
			ColumnValue: xmlutils.TextContent(child),
		})
	}
	return b.Build()
}

// FlattenRecords builds a wide table with one row per record.
//
// Columns are the union of the records' direct child tag names in first-seen
// order. Each cell is the text of the first descendant of the record carrying
// the column's tag, so a column discovered from one record may pick up a
// nested element in another. Records without a match leave the cell absent.
// No records yields a table with no header.
func FlattenRecords(name string, records []*etree.Element) *table.Table {
	b := table.NewBuilder(name)

	for _, record := range records {
		for _, child := range xmlutils.ChildElements(record) {
			b.AddColumn(xmlutils.TagName(child))
		}
	}

	columns := b.Columns()
	for _, record := range records {
		cells := make(map[string]string, len(columns))
		for _, col := range columns {
			if match := xmlutils.FirstByTag(record, col); match != nil {
				cells[col] = xmlutils.TextContent(match)
			}
		}
		b.AddRow(cells)
	}
	return b.Build()
}
