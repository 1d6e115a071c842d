// Command xlcore is a manual-QA harness for the xl codec: it loads an
// .xlsx file, optionally re-saves it, and dumps a sheet's cells to stdout
// so a workbook's round trip can be eyeballed without opening Excel.
// Grounded on CynicDog-xlmd/cmd/root.go's load-then-act CLI shape, restated
// with cobra subcommands instead of a single flag.Parse dispatch.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cellwright/xlcore/xl"
)

// stderrLogger is the real Logger wiring for interactive use; xl itself
// never writes to stderr on its own.
type stderrLogger struct{ verbose bool }

func (l stderrLogger) Debugf(format string, args ...any) {
	if l.verbose {
		fmt.Fprintf(os.Stderr, "xlcore: "+format+"\n", args...)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "xlcore",
		Short: "Inspect and re-save .xlsx workbooks",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log codec stage traces to stderr")

	root.AddCommand(newDumpCmd(&verbose), newConvertCmd(&verbose), newVersionCmd())
	return root
}

func newDumpCmd(verbose *bool) *cobra.Command {
	var sheetName string
	cmd := &cobra.Command{
		Use:   "dump <file.xlsx>",
		Short: "Print a sheet's populated cells as tab-separated rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := xl.Load(args[0], xl.ReadOptions{Logger: stderrLogger{*verbose}})
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			name := sheetName
			if name == "" {
				if active := wb.ActiveSheet(); active != nil {
					name = active.Name
				} else if names := wb.SheetNames(); len(names) > 0 {
					name = names[0]
				}
			}
			if name == "" {
				return fmt.Errorf("workbook has no sheets")
			}

			for row, values := range wb.ReadRows(name, 1, 1<<20) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d", row)
				for _, v := range values {
					fmt.Fprintf(cmd.OutOrStdout(), "\t%s", formatValue(v))
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sheetName, "sheet", "", "sheet name (default: active sheet)")
	return cmd
}

func newConvertCmd(verbose *bool) *cobra.Command {
	var compression int
	var lenient bool
	cmd := &cobra.Command{
		Use:   "convert <in.xlsx> <out.xlsx>",
		Short: "Load and re-save a workbook, exercising the full read/write pipeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := stderrLogger{*verbose}
			wb, err := xl.Load(args[0], xl.ReadOptions{Logger: logger, Lenient: lenient})
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			if err := wb.SaveFile(args[1], xl.WriteOptions{Logger: logger, CompressionLevel: compression}); err != nil {
				return fmt.Errorf("save %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d sheet(s))\n", args[1], len(wb.Sheets))
			return nil
		},
	}
	cmd.Flags().IntVar(&compression, "compression", 0, "compress/flate level, 0 for archive/zip default")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "tolerate malformed shared-string/formula references")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the xlcore version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func formatValue(v xl.Value) string {
	switch v.Kind {
	case xl.ValueEmpty:
		return ""
	case xl.ValueBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case xl.ValueNumber:
		return xl.FormatValue(v.Num, 0, "", false)
	default:
		return v.Str
	}
}
