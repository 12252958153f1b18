// sqldmlgen generates Go override declarations from a YAML document.
// Run: go run github.com/syssam/sqldml/gen/cmd/sqldmlgen -in overrides.yaml -pkg schema -dir ./schema
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/syssam/sqldml/gen"
)

func main() {
	var (
		in      = flag.String("in", "overrides.yaml", "path of the YAML override document")
		pkg     = flag.String("pkg", "", "package name of the generated files")
		dir     = flag.String("dir", ".", "output directory")
		workers = flag.Int("workers", 0, "number of files written in parallel (0 = GOMAXPROCS)")
	)
	flag.Parse()
	if *pkg == "" {
		fmt.Fprintln(os.Stderr, "sqldmlgen: -pkg is required")
		flag.Usage()
		os.Exit(2)
	}
	cfg := gen.Config{Package: *pkg, Dir: *dir, Workers: *workers}
	if err := gen.Generate(context.Background(), cfg, *in); err != nil {
		fmt.Fprintf(os.Stderr, "sqldmlgen: %v\n", err)
		os.Exit(1)
	}
}
