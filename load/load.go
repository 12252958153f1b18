// Package load reads statement-override declarations from YAML
// documents, as an alternative to declaring them in Go source.
//
// The document lists overrides per entity:
//
//	entities:
//	  user:
//	    - sql: "INSERT INTO users (name, email, id) VALUES (?, lower(?), ?)"
//	    - op: insert
//	      table: user_details
//	      sql: "INSERT INTO user_details (bio, id) VALUES (?, ?)"
//	    - op: delete
//	      sql: "CALL delete_user(?, ?)"
//	      callable: true
//	      verify:
//	        kind: out-parameter
//	        index: 1
//
// Parse returns one sqldml.Annotation per entity, validated the same
// way as Go declarations.
package load

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/sqldml"
)

// Verification kinds accepted in declarations.
const (
	KindNone         = "none"
	KindRowCount     = "row-count"
	KindOutParameter = "out-parameter"
)

// File is the top-level YAML document.
type File struct {
	// Entities maps entity labels to their override declarations.
	Entities map[string][]Declaration `yaml:"entities"`
}

// Declaration is one override entry of a YAML document.
type Declaration struct {
	// Op is the statement kind: insert, update, or delete.
	// Empty defaults to insert.
	Op string `yaml:"op"`

	// SQL is the statement text or procedure invocation.
	SQL string `yaml:"sql"`

	// Callable marks a stored-procedure invocation.
	Callable bool `yaml:"callable"`

	// Table names the secondary table the statement targets.
	// Empty denotes the primary table.
	Table string `yaml:"table"`

	// Verify declares the outcome verification strategy.
	Verify *Verification `yaml:"verify"`

	// Check is the legacy result-check style: none, count, or param.
	//
	// Deprecated: use Verify.
	Check string `yaml:"check"`
}

// Verification declares an expectation in a YAML document.
type Verification struct {
	// Kind is one of none, row-count, or out-parameter.
	Kind string `yaml:"kind"`

	// Rows is the expected row count. Zero means one.
	Rows int64 `yaml:"rows"`

	// Index is the 1-based output-parameter position for the
	// out-parameter kind. Zero means one.
	Index int `yaml:"index"`
}

// Parse decodes a YAML document into one annotation per entity. Every
// declared override is validated; declarations still using the
// deprecated check styles are reported through the default logger.
func Parse(data []byte) (map[string]sqldml.Annotation, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("load: parsing overrides: %w", err)
	}
	ants := make(map[string]sqldml.Annotation, len(f.Entities))
	for entity, decls := range f.Entities {
		var ant sqldml.Annotation
		for _, d := range decls {
			o, err := d.override()
			if err != nil {
				return nil, fmt.Errorf("load: entity %q: %w", entity, err)
			}
			if d.Check != "" {
				slog.Warn("load: check styles are deprecated, declare verify instead",
					"entity", entity, "op", o.Op, "table", o.Table)
			}
			ant = ant.Merge(sqldml.Annotation{Overrides: []sqldml.Override{o}}).(sqldml.Annotation)
		}
		if err := ant.Validate(); err != nil {
			return nil, fmt.Errorf("load: entity %q: %w", entity, err)
		}
		ants[entity] = ant
	}
	return ants, nil
}

// ParseFile reads and parses the YAML document at the given path.
func ParseFile(path string) (map[string]sqldml.Annotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: reading overrides: %w", err)
	}
	return Parse(data)
}

func (d Declaration) override() (sqldml.Override, error) {
	o := sqldml.Override{
		Op:       sqldml.OpInsert,
		SQL:      d.SQL,
		Callable: d.Callable,
		Table:    d.Table,
	}
	if d.Op != "" {
		o.Op = sqldml.Op(d.Op)
	}
	switch d.Check {
	case "":
	case "none":
		o.Check = sqldml.CheckNone
	case "count":
		o.Check = sqldml.CheckCount
	case "param":
		o.Check = sqldml.CheckParam
	default:
		return o, fmt.Errorf("unknown check style %q", d.Check)
	}
	if d.Verify != nil {
		switch d.Verify.Kind {
		case KindNone:
			o.Verify = sqldml.None{}
		case KindRowCount:
			o.Verify = sqldml.RowCount{Rows: d.Verify.Rows}
		case KindOutParameter:
			index := d.Verify.Index
			if index == 0 {
				index = 1
			}
			o.Verify = sqldml.OutParameter{Index: index, Rows: d.Verify.Rows}
		default:
			return o, fmt.Errorf("unknown verification kind %q", d.Verify.Kind)
		}
	}
	return o, nil
}
