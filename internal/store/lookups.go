package store

import (
	"log/slog"
	"strconv"

	"github.com/wowemu-tools/dbckit/internal/dbc"
)

// buildLookups resolves every reference field of t against the other
// tables in the workspace. Resolution is advisory display data: a
// referenced table that cannot be loaded simply leaves the field
// unresolved.
func (s *Store) buildLookups(t *dbc.Table) {
	t.Lookups = make(map[string]map[string]string)
	for _, f := range t.Schema.Fields {
		if f.Reference == "" || f.Reference == t.Name {
			continue
		}
		ref, err := s.Load(f.Reference)
		if err != nil {
			slog.Info("lookups:: referenced table unavailable",
				"table", t.Name, "field", f.Name, "ref", f.Reference, "err", err)
			continue
		}
		byID := make(map[string]string, len(ref.Records))
		for _, rec := range ref.Records {
			id := strconv.FormatUint(uint64(rec.Key()), 10)
			if _, dup := byID[id]; dup {
				continue
			}
			byID[id] = ref.Label(rec)
		}
		t.Lookups[f.Name] = byID
	}
}
