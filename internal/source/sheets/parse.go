package sheets

import (
	"fmt"
	"math"
	"strings"

	"finreports/internal/core"
)

// headerAliases maps normalized sheet headers to record fields. Several
// common export spellings fold to the same field.
var headerAliases = map[string]string{
	"date":             "date",
	"posted date":      "date",
	"transaction date": "date",
	"amount":           "amount",
	"category":         "category",
	"merchant":         "merchant",
	"payee":            "merchant",
	"account":          "account",
	"description":      "description",
	"memo":             "notes",
	"notes":            "notes",
}

// parseRows converts a values matrix (as returned by the Sheets API) into
// transactions. The first row holds the headers. Blank rows are skipped and
// counted; rows with unparseable cells become partial records.
func parseRows(values [][]interface{}) ([]core.Transaction, int) {
	if len(values) == 0 {
		return nil, 0
	}

	cols := map[string]int{}
	for i, h := range values[0] {
		name := strings.ToLower(strings.TrimSpace(toString(h)))
		if field, ok := headerAliases[name]; ok {
			if _, taken := cols[field]; !taken {
				cols[field] = i
			}
		}
	}

	var (
		txs     []core.Transaction
		skipped int
	)
	for _, row := range values[1:] {
		if blankRow(row) {
			skipped++
			continue
		}
		tx := core.Transaction{Amount: math.NaN()}
		if i, ok := cols["date"]; ok {
			if d, ok := core.ParseDate(cell(row, i)); ok {
				tx.Date = d
			}
		}
		if i, ok := cols["amount"]; ok {
			tx.Amount = core.ParseAmount(cell(row, i))
		}
		if i, ok := cols["category"]; ok {
			tx.Category = strings.TrimSpace(toString(cell(row, i)))
		}
		if i, ok := cols["merchant"]; ok {
			tx.Merchant = strings.TrimSpace(toString(cell(row, i)))
		}
		if i, ok := cols["account"]; ok {
			tx.Account = strings.TrimSpace(toString(cell(row, i)))
		}
		if i, ok := cols["description"]; ok {
			tx.Description = strings.TrimSpace(toString(cell(row, i)))
		}
		if i, ok := cols["notes"]; ok {
			tx.Notes = strings.TrimSpace(toString(cell(row, i)))
		}
		txs = append(txs, tx)
	}
	return txs, skipped
}

func cell(row []interface{}, i int) any {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func blankRow(row []interface{}) bool {
	for _, v := range row {
		if strings.TrimSpace(toString(v)) != "" {
			return false
		}
	}
	return true
}
