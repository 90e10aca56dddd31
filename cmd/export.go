package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cris-labs/cris/internal/export"
	"github.com/cris-labs/cris/internal/filter"
)

var (
	exportFormat   string
	exportOut      string
	exportStatuses []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roster as CSV, XLSX, or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}

		records := e.Store.All()
		if len(exportStatuses) > 0 {
			statuses, err := parseStatuses(exportStatuses)
			if err != nil {
				return err
			}
			records = filter.ByStatus(records, statuses)
		}

		out := cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return eris.Wrap(err, "create output file")
			}
			defer f.Close()
			out = f
		}

		switch exportFormat {
		case "csv":
			return export.WriteCSV(out, records)
		case "xlsx":
			return export.WriteXLSX(out, records)
		case "yaml":
			return export.WriteYAML(out, records)
		default:
			return eris.Errorf("unknown format %q, expected csv, xlsx, or yaml", exportFormat)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv, xlsx, or yaml")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringSliceVar(&exportStatuses, "status", nil, "statuses to include (default all)")
	rootCmd.AddCommand(exportCmd)
}
