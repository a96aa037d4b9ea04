package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/homestock/internal/inventory"
)

// import <file>: decode, normalize and submit an item list.
func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import items from a CSV, TXT or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := inventory.DetectFormat(filepath.Base(path), "")
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if limit := cfg.Import.MaxFileSize; limit > 0 && info.Size() > limit {
				return &inventory.DecodeError{
					Format: format,
					Err:    fmt.Errorf("file too large: %d bytes exceeds %d", info.Size(), limit),
				}
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			res, err := service.Import(cmd.Context(), session(), data, format)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d item(s) from %d row(s)\n", len(res.Accepted), res.TotalRows)
			if res.Skipped > 0 {
				fmt.Fprintf(out, "Skipped %d unusable row(s)\n", res.Skipped)
			}
			if res.Truncated > 0 {
				fmt.Fprintf(out, "Dropped %d item(s) over the batch limit of %d\n", res.Truncated, cfg.Import.BatchLimit)
			}
			return nil
		},
	}
	return cmd
}
