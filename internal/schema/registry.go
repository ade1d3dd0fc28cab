package schema

import (
	"fmt"

	"github.com/spf13/viper"
)

// Registry supplies the schema for a table name. Lookups that miss fall
// back to Generic at the decode site, so a registry is never required.
type Registry interface {
	SchemaFor(table string) (TableSchema, bool)
}

// StaticRegistry is an in-memory Registry, immutable after construction.
type StaticRegistry map[string]TableSchema

var _ Registry = (StaticRegistry)(nil)

func (r StaticRegistry) SchemaFor(table string) (TableSchema, bool) {
	s, ok := r[table]
	return s, ok
}

// fileField mirrors one field entry in the schema YAML file.
type fileField struct {
	Name   string `mapstructure:"name"`
	Type   string `mapstructure:"type"`
	Ref    string `mapstructure:"ref"`
	Hidden bool   `mapstructure:"hidden"`
}

// LoadRegistry reads a schema definition file:
//
//	tables:
//	  Spell:
//	    - {name: id, type: uint32}
//	    - {name: name, type: string}
//	    - {name: icon, type: uint32, ref: SpellIcon}
func LoadRegistry(path string) (StaticRegistry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var raw struct {
		Tables map[string][]fileField `mapstructure:"tables"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal schema file: %w", err)
	}

	reg := make(StaticRegistry, len(raw.Tables))
	for name, fields := range raw.Tables {
		ts := TableSchema{Table: name, Fields: make([]FieldDef, 0, len(fields))}
		for _, f := range fields {
			kind, err := ParseKind(f.Type)
			if err != nil {
				return nil, fmt.Errorf("table %s, field %s: %w", name, f.Name, err)
			}
			ts.Fields = append(ts.Fields, FieldDef{
				Name:      f.Name,
				Kind:      kind,
				Reference: f.Ref,
				Hidden:    f.Hidden,
			})
		}
		reg[name] = ts
	}
	return reg, nil
}
