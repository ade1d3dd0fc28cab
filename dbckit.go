// Package dbckit is the top-level facade for the WDBC table codec and
// editing engine.
package dbckit

import (
	"github.com/wowemu-tools/dbckit/internal/dbc"
	"github.com/wowemu-tools/dbckit/internal/diff"
	"github.com/wowemu-tools/dbckit/internal/edit"
	"github.com/wowemu-tools/dbckit/internal/schema"
	"github.com/wowemu-tools/dbckit/internal/store"
)

type (
	Table       = dbc.Table
	Record      = dbc.Record
	Value       = dbc.Value
	Header      = dbc.Header
	TableSchema = schema.TableSchema
	FieldDef    = schema.FieldDef
	Registry    = schema.Registry
	EditSet     = edit.EditSet
	DiffResult  = diff.Result
	Store       = store.Store
)

var (
	Decode = dbc.Decode
	Encode = dbc.Encode
	Diff   = diff.Diff
)
