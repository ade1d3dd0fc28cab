package cli

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/wowemu-tools/dbckit/internal/query"
)

var (
	dumpHidden bool
	dumpSelect string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <table>",
	Short: "Print a table as JSON, optionally filtered by a JSONPath",
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

		res := query.Project(tbl, dumpHidden)
		if dumpSelect != "" {
			vals, err := res.Select(dumpSelect)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(vals, 2))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.JSON(2))
		return nil
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpHidden, "hidden", false, "include hidden (locale) columns")
	dumpCmd.Flags().StringVar(&dumpSelect, "select", "", "JSONPath filter, e.g. $.records[*][1]")
}
