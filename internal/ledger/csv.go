// Package ledger reads expense ledgers and notification dumps from files.
package ledger

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// ReadCSV reads "Date,Description,Amount" or "Description,Amount" lines. A
// header row is skipped when present. Rows are returned unvalidated so bad
// amounts can be counted later; a row with a single field becomes a record
// with no amount. Each line is parsed on its own, so a line with broken
// quoting is kept as a record without an amount and never spills into the
// lines after it.
func ReadCSV(r io.Reader) ([]model.RawRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageLine)

	var records []model.RawRecord
	first := true
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		row, err := parseRow(text)
		if err != nil {
			slog.Debug("unparsable ledger line", "line", line, "error", err)
			records = append(records, model.RawRecord{Description: text})
			first = false
			continue
		}

		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}
		records = append(records, rowToRecord(row))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	return records, nil
}

// parseRow splits one ledger line. Quotes must be balanced.
func parseRow(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	row, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("malformed ledger line: %w", err)
	}
	return row, nil
}

func rowToRecord(row []string) model.RawRecord {
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	switch len(row) {
	case 0:
		return model.RawRecord{}
	case 1:
		return model.RawRecord{Description: row[0]}
	case 2:
		return model.RawRecord{Description: row[0], Amount: row[1]}
	default:
		// Extra commas belong to the description.
		last := len(row) - 1
		return model.RawRecord{
			Date:        row[0],
			Description: strings.Join(row[1:last], ", "),
			Amount:      row[last],
		}
	}
}

func isHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[len(row)-1]), "amount")
}
