package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring"
	"github.com/spf13/cobra"

	"github.com/wowemu-tools/dbckit/internal/edit"
)

var (
	replaceColumn int
	replaceFind   string
	replaceWith   string
	replaceMatch  string
	replaceRows   string
	replaceDryRun bool
)

var replaceCmd = &cobra.Command{
	Use:   "replace <table>",
	Short: "Batch find/replace over one column, then save to the export dir",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		match, err := edit.ParseMatchKind(replaceMatch)
		if err != nil {
			return err
		}
		scope, err := parseRowSet(replaceRows)
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		tbl, err := s.Load(args[0])
		if err != nil {
			return err
		}

		n, set, err := edit.BatchReplace(tbl, replaceColumn, replaceFind, replaceWith, match, scope)
		if err != nil {
			return err
		}
		if n == 0 || replaceDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "%d record(s) matched, nothing written\n", n)
			return nil
		}
		if _, err := s.Save(tbl, set); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d record(s) updated\n", n)
		return nil
	},
}

// parseRowSet turns "1,2,7" into a bitmap scope; empty means all rows.
func parseRowSet(spec string) (*roaring.Bitmap, error) {
	if spec == "" {
		return nil, nil
	}
	set := roaring.New()
	for _, part := range strings.Split(spec, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid row index %q: %w", part, err)
		}
		set.Add(uint32(n))
	}
	return set, nil
}

func init() {
	replaceCmd.Flags().IntVar(&replaceColumn, "column", 0, "field index to edit")
	replaceCmd.Flags().StringVar(&replaceFind, "find", "", "value to find")
	replaceCmd.Flags().StringVar(&replaceWith, "replace", "", "replacement value")
	replaceCmd.Flags().StringVar(&replaceMatch, "match", "exact", "match kind: exact or contains")
	replaceCmd.Flags().StringVar(&replaceRows, "rows", "", "comma-separated record indices to restrict the edit to")
	replaceCmd.Flags().BoolVar(&replaceDryRun, "dry-run", false, "report matches without saving")
	_ = replaceCmd.MarkFlagRequired("find")
}
