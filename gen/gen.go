// Package gen generates Go declarations from YAML override documents.
//
// For every entity in the document, a file named <entity>_overrides.go
// is written with a function returning the entity's annotation, so
// projects keeping their overrides in YAML can register them as typed
// declarations without hand-copying.
package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/sqldml"
	"github.com/syssam/sqldml/load"
)

const sqldmlPkg = "github.com/syssam/sqldml"

// Config holds the code generation settings.
type Config struct {
	// Package is the package name of the generated files.
	Package string

	// Dir is the output directory. It is created when missing.
	Dir string

	// Workers bounds the number of files written in parallel.
	// Zero means GOMAXPROCS.
	Workers int
}

// Generate reads the YAML override document at path and writes one
// generated file per entity into the configured directory.
func Generate(ctx context.Context, cfg Config, path string) error {
	if cfg.Package == "" {
		return fmt.Errorf("gen: missing package name")
	}
	ants, err := load.ParseFile(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("gen: create output directory: %w", err)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	entities := make([]string, 0, len(ants))
	for entity := range ants {
		entities = append(entities, entity)
	}
	sort.Strings(entities)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, entity := range entities {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeEntity(cfg, entity, ants[entity])
		})
	}
	return g.Wait()
}

func writeEntity(cfg Config, entity string, ant sqldml.Annotation) error {
	f := jen.NewFile(cfg.Package)
	f.HeaderComment("Code generated by sqldmlgen. DO NOT EDIT.")

	fn := inflect.Camelize(entity) + "Overrides"
	f.Commentf("%s returns the statement overrides declared for the %s entity.", fn, entity)
	f.Func().Id(fn).Params().Qual(sqldmlPkg, "Annotation").Block(
		jen.Return(jen.Qual(sqldmlPkg, "Annotation").Values(jen.Dict{
			jen.Id("Overrides"): jen.Index().Qual(sqldmlPkg, "Override").ValuesFunc(func(group *jen.Group) {
				for _, o := range ant.Overrides {
					group.Add(overrideValue(o))
				}
			}),
		})),
	)

	w := &sliceWriter{}
	if err := f.Render(w); err != nil {
		return fmt.Errorf("gen: rendering %s: %w", entity, err)
	}
	name := filepath.Join(cfg.Dir, inflect.Underscore(entity)+"_overrides.go")
	buf, err := imports.Process(name, w.data, nil)
	if err != nil {
		return fmt.Errorf("gen: formatting %s: %w", entity, err)
	}
	if err := os.WriteFile(name, buf, 0o644); err != nil {
		return fmt.Errorf("gen: writing %s: %w", name, err)
	}
	return nil
}

func overrideValue(o sqldml.Override) jen.Code {
	d := jen.Dict{
		jen.Id("Op"):  opValue(o.Op),
		jen.Id("SQL"): jen.Lit(o.SQL),
	}
	if o.Callable {
		d[jen.Id("Callable")] = jen.Lit(true)
	}
	if o.Table != "" {
		d[jen.Id("Table")] = jen.Lit(o.Table)
	}
	if o.Check != sqldml.CheckNone {
		d[jen.Id("Check")] = checkValue(o.Check)
	}
	if o.Verify != nil {
		d[jen.Id("Verify")] = verifyValue(o.Verify)
	}
	return jen.Values(d)
}

func opValue(op sqldml.Op) jen.Code {
	switch op {
	case sqldml.OpUpdate:
		return jen.Qual(sqldmlPkg, "OpUpdate")
	case sqldml.OpDelete:
		return jen.Qual(sqldmlPkg, "OpDelete")
	default:
		return jen.Qual(sqldmlPkg, "OpInsert")
	}
}

func checkValue(style sqldml.ResultCheckStyle) jen.Code {
	switch style {
	case sqldml.CheckParam:
		return jen.Qual(sqldmlPkg, "CheckParam")
	default:
		return jen.Qual(sqldmlPkg, "CheckCount")
	}
}

func verifyValue(e sqldml.Expectation) jen.Code {
	switch e := e.(type) {
	case sqldml.RowCount:
		d := jen.Dict{}
		if e.Rows != 0 {
			d[jen.Id("Rows")] = jen.Lit(e.Rows)
		}
		return jen.Qual(sqldmlPkg, "RowCount").Values(d)
	case sqldml.OutParameter:
		d := jen.Dict{jen.Id("Index"): jen.Lit(e.Index)}
		if e.Rows != 0 {
			d[jen.Id("Rows")] = jen.Lit(e.Rows)
		}
		return jen.Qual(sqldmlPkg, "OutParameter").Values(d)
	default:
		return jen.Qual(sqldmlPkg, "None").Values()
	}
}

type sliceWriter struct {
	data []byte
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}
