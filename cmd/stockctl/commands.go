package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func migrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Apply, roll back or inspect schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := e.openMigrations()
			if err != nil {
				return err
			}
			switch args[0] {
			case "up":
				if err := m.Up(); err != nil {
					return err
				}
			case "down":
				if err := m.Down(); err != nil {
					return err
				}
			}
			v, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	}
}

func exportCSVCmd(e *env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-csv",
		Short: "Write current stock levels as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := e.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			body, err := svc.ExportCSV(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
				return err
			}
			if err := os.WriteFile(output, []byte(body), 0o644); err != nil { //nolint:gosec // exported report, not a secret
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default stdout)")
	return cmd
}

func pruneHistoryCmd(e *env) *cobra.Command {
	var olderThan int
	cmd := &cobra.Command{
		Use:   "prune-history",
		Short: "Delete stock history older than the given number of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be a positive number of days")
			}
			svc, closeFn, err := e.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			cutoff := e.now().AddDate(0, 0, -olderThan)
			n, err := svc.PruneHistory(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d history entries recorded before %s\n", n, cutoff.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().IntVar(&olderThan, "older-than", 0, "Age in days; entries older than this are deleted")
	_ = cmd.MarkFlagRequired("older-than")
	return cmd
}
