// Command relodemo builds a catalog, loads a few rows, and runs a
// handful of queries end to end. It is not a REPL and not a client
// driver: it exists to exercise the engine the way a one-shot script
// would, the same role examples/memory-optimization/main.go plays in
// the teacher tree.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"relo/internal/obslog"
	"relo/pkg/row"
	"relo/pkg/schema"
	"relo/pkg/sql/executor"
	"relo/pkg/types"
)

const defaultCatalogYAML = `
tables:
  - name: employees
    primary_key: id
    columns:
      - name: id
        type: int
      - name: name
        type: text
  - name: orders
    columns:
      - name: employee_id
        type: int
      - name: total
        type: int
`

func main() {
	catalogPath := flag.String("catalog", "", "path to a YAML catalog file (defaults to a built-in employees/orders schema)")
	flag.Parse()

	obslog.Init()

	eng := executor.New()
	if err := bootstrap(eng, *catalogPath); err != nil {
		fmt.Fprintf(os.Stderr, "relodemo: %v\n", err)
		os.Exit(1)
	}

	seedRows(eng)

	queries := []string{
		"SHOW TABLES",
		"SELECT name FROM employees ORDER BY name",
		"SELECT name, total FROM employees JOIN orders ON employees.id = orders.employee_id",
		"DESCRIBE TABLE orders",
	}
	for _, q := range queries {
		run(eng, q)
	}
}

func bootstrap(eng *executor.Engine, catalogPath string) error {
	if catalogPath == "" {
		return eng.Catalog().LoadYAML(strings.NewReader(defaultCatalogYAML))
	}
	f, err := os.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()
	return eng.Catalog().LoadYAML(f)
}

func seedRows(eng *executor.Engine) {
	for _, r := range []row.Row{
		{types.NewInt(1), types.NewText("Alice")},
		{types.NewInt(2), types.NewText("Bob")},
	} {
		if _, err := eng.Insert("employees", r); err != nil {
			fmt.Fprintf(os.Stderr, "relodemo: seeding employees: %v\n", err)
		}
	}
	for _, r := range []row.Row{
		{types.NewInt(1), types.NewInt(10)},
		{types.NewInt(1), types.NewInt(20)},
		{types.NewInt(2), types.NewInt(30)},
	} {
		if _, err := eng.Insert("orders", r); err != nil {
			fmt.Fprintf(os.Stderr, "relodemo: seeding orders: %v\n", err)
		}
	}
}

func run(eng *executor.Engine, sql string) {
	fmt.Printf("\n> %s\n", sql)
	qr, err := eng.Execute(sql)
	if err != nil {
		fmt.Printf("  error: %v\n", err)
		return
	}
	defer qr.Close()

	for {
		v, err := qr.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			return
		}
		fmt.Printf("  %v\n", v.Values())
	}
}
