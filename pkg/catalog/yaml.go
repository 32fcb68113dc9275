package catalog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"relo/pkg/schema"
	"relo/pkg/types"
)

// yamlDocument mirrors the shape documented in SPEC_FULL.md §4.5:
//
//	tables:
//	  - name: employees
//	    primary_key: id
//	    columns:
//	      - name: id
//	        type: int
//	      - name: name
//	        type: text
type yamlDocument struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Name       string       `yaml:"name"`
	PrimaryKey string       `yaml:"primary_key,omitempty"`
	Columns    []yamlColumn `yaml:"columns"`
}

type yamlColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadYAML parses a YAML document of tables and creates each one via
// CreateTable, in document order, so that SHOW TABLES on a
// YAML-bootstrapped catalog is reproducible the same way a
// programmatically-built one is.
func (c *Catalog) LoadYAML(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("catalog: reading YAML: %w", err)
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &CatalogError{Kind: InvalidSchema, Detail: err.Error()}
	}
	for _, t := range doc.Tables {
		cols := make([]schema.Column, len(t.Columns))
		for i, yc := range t.Columns {
			ct, ok := parseColumnType(yc.Type)
			if !ok {
				return &CatalogError{Kind: InvalidSchema, Detail: fmt.Sprintf("table %q column %q: unknown type %q", t.Name, yc.Name, yc.Type)}
			}
			cols[i] = schema.Column{Name: yc.Name, Type: ct}
		}
		s, err := schema.NewSchema(cols, t.PrimaryKey)
		if err != nil {
			return &CatalogError{Kind: InvalidSchema, Detail: fmt.Sprintf("table %q: %v", t.Name, err)}
		}
		if err := c.CreateTable(t.Name, s); err != nil {
			return err
		}
	}
	return nil
}

func parseColumnType(s string) (types.ColumnType, bool) {
	switch s {
	case "int", "INT", "integer", "INTEGER":
		return types.Int, true
	case "text", "TEXT", "string", "STRING":
		return types.Text, true
	case "bool", "BOOL", "boolean", "BOOLEAN":
		return types.Bool, true
	default:
		return 0, false
	}
}
