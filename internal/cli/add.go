package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wowemu-tools/dbckit/internal/dbc"
	"github.com/wowemu-tools/dbckit/internal/edit"
)

var addSet []string

var addCmd = &cobra.Command{
	Use:   "add <table>",
	Short: "Append a record (id = max+1), then save to the export dir",
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

		defaults, err := parseSetFlags(tbl, addSet)
		if err != nil {
			return err
		}

		_, rec := edit.AddRow(tbl, defaults)
		if _, err := s.Save(tbl, nil); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added record %d\n", rec.Key())
		return nil
	},
}

// parseSetFlags maps field=value pairs to column indices. The key field
// cannot be set: AddRow assigns it and would ignore an override, so
// accepting one here would silently lie to the user.
func parseSetFlags(tbl *dbc.Table, pairs []string) (map[int]string, error) {
	defaults := make(map[int]string, len(pairs))
	for _, kv := range pairs {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want field=value", kv)
		}
		idx := tbl.Schema.FieldIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("unknown field %q in table %s", name, tbl.Name)
		}
		if idx == 0 {
			return nil, fmt.Errorf("field %q is the primary key and is assigned automatically", name)
		}
		defaults[idx] = value
	}
	return defaults, nil
}

func init() {
	addCmd.Flags().StringArrayVar(&addSet, "set", nil, "field=value pairs for the new record (the key field is assigned automatically)")
}
