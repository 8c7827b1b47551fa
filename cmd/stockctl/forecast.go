package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	domainsvcs "github.com/ghuser/stocktracker/services/inventory/domain/services"
)

type forecastRow struct {
	Item         string  `json:"item"`
	CurrentStock int     `json:"currentStock"`
	AvgUsage     float64 `json:"avgUsagePerBucket"`
	UntilRestock *int    `json:"bucketsUntilRestock"`
}

func forecastCmd(e *env) *cobra.Command {
	var (
		item   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project how long current stock lasts from recent usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := e.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := svc.Analytics(cmd.Context())
			if err != nil {
				return err
			}
			rows := forecastRows(report, item)
			if item != "" && len(rows) == 0 {
				return fmt.Errorf("no stock history for %q", item)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			return writeForecastTable(cmd.OutOrStdout(), report.Bucket, rows)
		},
	}
	cmd.Flags().StringVar(&item, "item", "", "Only show this item (case-insensitive)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func forecastRows(r domainsvcs.Report, item string) []forecastRow {
	rows := make([]forecastRow, 0, len(r.Forecasts))
	for _, f := range r.Forecasts {
		if item != "" && !strings.EqualFold(f.ItemName, item) {
			continue
		}
		rows = append(rows, forecastRow{
			Item:         f.ItemName,
			CurrentStock: f.CurrentStock,
			AvgUsage:     f.AvgUsageRate,
			UntilRestock: f.UntilRestock,
		})
	}
	return rows
}

func writeForecastTable(out io.Writer, b domainsvcs.Bucket, rows []forecastRow) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ITEM\tSTOCK\tAVG USAGE/%s\t%sS LEFT\n", strings.ToUpper(b.String()), strings.ToUpper(b.String()))
	for _, r := range rows {
		left := "n/a"
		if r.UntilRestock != nil {
			left = strconv.Itoa(*r.UntilRestock)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%s\n", r.Item, r.CurrentStock, r.AvgUsage, left)
	}
	return tw.Flush()
}
