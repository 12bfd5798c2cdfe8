package export

import (
	"strings"
	"time"

	"github.com/eddieyong/financetracker/pkg/transaction"
)

const ContentType = "text/csv;charset=utf-8"

var header = []string{"Date", "Description", "Category", "Amount"}

// RenderCSV writes the header and one row per transaction in the given order. Every field is
// wrapped in double quotes, embedded quotes are doubled and every row ends with a newline.
// Amounts are written as plain signed numbers.
func RenderCSV(txs []transaction.Transaction) string {
	var b strings.Builder
	writeRow(&b, header)
	for _, t := range txs {
		writeRow(&b, []string{t.DateString(), t.Description, t.Category, t.Amount.String()})
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// Filename is the download name for an export made at now. The date is the UTC calendar date.
func Filename(now time.Time) string {
	return "money_tracker_export_" + now.UTC().Format(transaction.DateLayout) + ".csv"
}
