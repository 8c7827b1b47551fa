package services

import (
	"strconv"
	"strings"

	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

var csvHeader = []string{"Name", "Category", "Current Quantity", "Min Threshold"}

// ConvertToCSV renders the stock-level export. Fields are joined with commas
// without quoting, rows with "\n", and there is no trailing newline; existing
// spreadsheet imports depend on this exact shape.
func ConvertToCSV(items []*models.Item) string {
	rows := make([]string, 0, len(items)+1)
	rows = append(rows, strings.Join(csvHeader, ","))
	for _, it := range items {
		rows = append(rows, strings.Join([]string{
			it.Name.String(),
			strings.ToLower(it.Category.String()),
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.MinThreshold),
		}, ","))
	}
	return strings.Join(rows, "\n")
}
