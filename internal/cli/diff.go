package cli

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/wowemu-tools/dbckit/internal/diff"
)

var diffCmd = &cobra.Command{
	Use:   "diff <table>",
	Short: "Diff the base variant of a table against the export variant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		base, err := s.LoadBase(args[0])
		if err != nil {
			return err
		}
		custom, err := s.Load(args[0])
		if err != nil {
			return err
		}

		res, err := diff.Diff(base, custom)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(res, 2))
		return nil
	},
}
