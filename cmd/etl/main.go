// Command etl runs the fixed-width pipeline offline: it parses an input
// file and writes the CSV/JSON exports without touching the database.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iiTzGuzz/LLMSDATA/etl/export"
	"github.com/iiTzGuzz/LLMSDATA/etl/fixedwidth"
	"github.com/iiTzGuzz/LLMSDATA/etl/registro"
	"github.com/iiTzGuzz/LLMSDATA/etl/transform"
	"github.com/iiTzGuzz/LLMSDATA/pkg/logx"
)

var (
	flagOutCSV  string
	flagOutJSON string
	flagFecha   string
	flagStrict  bool
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "etl",
		Short: "Fixed-width insurance file toolkit",
	}

	process := &cobra.Command{
		Use:   "process <input.txt>",
		Short: "Parse a fixed-width file and write CSV/JSON exports",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcess,
	}
	process.Flags().StringVar(&flagOutCSV, "out-csv", "", "CSV output path (default: <input>.csv)")
	process.Flags().StringVar(&flagOutJSON, "out-json", "", "JSON output path (default: <input>.json)")
	process.Flags().StringVar(&flagFecha, "fecha", "", "override de fecha YYYYMMDD (default: tomada del nombre)")
	process.Flags().BoolVar(&flagStrict, "strict", false, "fail on lines that are not exactly 1615 characters")
	process.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	root.AddCommand(process)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runProcess(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logx.SetLevel(logx.LevelDebug)
	}

	inputPath := args[0]
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer f.Close()

	var parserOpts []fixedwidth.ParserOption
	if flagFecha != "" {
		parserOpts = append(parserOpts, fixedwidth.WithDateOverride(flagFecha))
	}
	if flagStrict {
		parserOpts = append(parserOpts, fixedwidth.WithSplitterOptions(fixedwidth.WithStrictLength()))
	}

	parser, err := fixedwidth.NewParser(f, filepath.Base(inputPath), parserOpts...)
	if err != nil {
		return err
	}

	transformer, err := transform.NewTransformer(parser.Date(), filepath.Base(inputPath))
	if err != nil {
		return err
	}

	var records []*registro.Registro
	err = parser.IterRows(func(lineNo int, cols []string) error {
		rec, err := transformer.Build(cols)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	csvPath := flagOutCSV
	if csvPath == "" {
		csvPath = stem + ".csv"
	}
	jsonPath := flagOutJSON
	if jsonPath == "" {
		jsonPath = stem + ".json"
	}

	if err := writeFile(csvPath, func(w *os.File) error { return export.WriteCSV(w, records) }); err != nil {
		return err
	}
	if err := writeFile(jsonPath, func(w *os.File) error { return export.WriteJSON(w, records) }); err != nil {
		return err
	}

	logx.Infof("Processed %d records from %s (fecha %s)", len(records), inputPath, parser.Date())
	fmt.Fprintf(cmd.OutOrStdout(), "registros: %d\ncsv: %s\njson: %s\n", len(records), csvPath, jsonPath)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
