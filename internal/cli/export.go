package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Copy a table's working variant into the export directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		tbl, err := s.Load(args[0])
		if err != nil {
			return err
		}
		if _, err := s.Save(tbl, nil); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%d records)\n", tbl.Name, len(tbl.Records))
		return nil
	},
}
