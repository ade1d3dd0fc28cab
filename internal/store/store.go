package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/wowemu-tools/dbckit/internal/dbc"
	"github.com/wowemu-tools/dbckit/internal/edit"
	"github.com/wowemu-tools/dbckit/internal/schema"
)

var (
	ErrNotFound      = errors.New("store: table file not found")
	ErrReadOnlyTable = errors.New("store: table has a read-only base origin")
	ErrValidation    = errors.New("store: candidate records failed validation")
)

// Store is the workspace of loaded tables for one editing session. Tables
// are read from the export directory when a customized copy exists there,
// falling back to the read-only base directory; saves only ever target the
// export directory. With no export directory configured every table is
// base-only and saving is rejected.
type Store struct {
	fs        billy.Filesystem
	baseDir   string
	exportDir string
	reg       schema.Registry

	tables map[string]*dbc.Table
}

func New(fs billy.Filesystem, baseDir, exportDir string, reg schema.Registry) *Store {
	return &Store{
		fs:        fs,
		baseDir:   baseDir,
		exportDir: exportDir,
		reg:       reg,
		tables:    make(map[string]*dbc.Table),
	}
}

func fileName(name string) string { return name + ".dbc" }

// Load returns the working copy of a table: the export variant when one
// exists, the base variant otherwise. Loaded tables are cached for the
// session and carry their reference lookups.
func (s *Store) Load(name string) (*dbc.Table, error) {
	if t, ok := s.tables[name]; ok {
		return t, nil
	}

	var t *dbc.Table
	var err error
	if s.exportDir != "" {
		t, err = s.loadFrom(s.exportPath(name), name, false)
		if errors.Is(err, ErrNotFound) {
			t, err = s.loadFrom(s.basePath(name), name, false)
		}
	} else {
		t, err = s.loadFrom(s.basePath(name), name, true)
	}
	if err != nil {
		return nil, err
	}

	s.tables[name] = t
	s.buildLookups(t)
	return t, nil
}

// LoadBase always reads the pristine base variant, bypassing the cache.
// The result is flagged read-only; it exists to serve as the left side of
// a diff and can never be saved.
func (s *Store) LoadBase(name string) (*dbc.Table, error) {
	return s.loadFrom(s.basePath(name), name, true)
}

func (s *Store) basePath(name string) string {
	return s.fs.Join(s.baseDir, fileName(name))
}

func (s *Store) exportPath(name string) string {
	return s.fs.Join(s.exportDir, fileName(name))
}

func (s *Store) loadFrom(path, name string, baseOnly bool) (*dbc.Table, error) {
	data, err := util.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %s", ErrNotFound, name, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	t, err := dbc.Decode(name, data, s.reg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	t.BaseOnly = baseOnly
	return t, nil
}

// Save merges the edit set into the table, validates the candidate record
// set, encodes it and persists it to the export location with a
// write-then-rename so a crash mid-write cannot leave a truncated file.
// On success the cached table is replaced by a decode of the freshly
// written bytes, so in-memory and on-disk state cannot diverge silently.
func (s *Store) Save(t *dbc.Table, set edit.EditSet) (*dbc.Table, error) {
	if t.BaseOnly || s.exportDir == "" {
		return nil, fmt.Errorf("%w: %s", ErrReadOnlyTable, t.Name)
	}

	// Validate everything before touching the record set or the disk.
	width := t.Schema.NumFields()
	for idx, rec := range set {
		if idx == edit.PendingRowIndex {
			continue
		}
		if idx < 0 || idx >= len(t.Records) {
			return nil, fmt.Errorf("%w: edit for record %d of %d", ErrValidation, idx, len(t.Records))
		}
		if len(rec) != width {
			return nil, fmt.Errorf("%w: edit for record %d has %d fields, schema has %d",
				ErrValidation, idx, len(rec), width)
		}
	}
	for i, rec := range t.Records {
		if len(rec) != width {
			return nil, fmt.Errorf("%w: record %d has %d fields, schema has %d",
				ErrValidation, i, len(rec), width)
		}
	}

	for idx, rec := range set {
		if idx == edit.PendingRowIndex {
			// Rows never assigned a real slot are not part of the current
			// record set; the edit engine appends rows itself.
			slog.Warn("save:: dropping unassigned pending row", "table", t.Name)
			continue
		}
		t.Records[idx] = rec
		t.MarkDirty()
	}

	data, err := dbc.Encode(t)
	if err != nil {
		return nil, err
	}
	if err := s.writeAtomic(s.exportPath(t.Name), data); err != nil {
		return nil, err
	}

	// Reload from what actually hit the disk.
	fresh, err := dbc.Decode(t.Name, data, s.reg)
	if err != nil {
		return nil, fmt.Errorf("reload after save: %w", err)
	}
	s.tables[t.Name] = fresh
	s.buildLookups(fresh)
	return fresh, nil
}

// writeAtomic writes to a sibling temp file and renames it over the
// destination.
func (s *Store) writeAtomic(path string, data []byte) error {
	dir := s.exportDir
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := s.fs.TempFile(dir, "dbc-")
	if err != nil {
		return fmt.Errorf("temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("rename %s -> %s: %w", tmpName, path, err)
	}
	return nil
}
