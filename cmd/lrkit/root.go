package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/lrkit/lr"
	"github.com/npillmayer/lrkit/lr/grammarfile"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "lrkit",
	Short: "Build LR(1) parser tables and automata",
	Long: `lrkit provides these features:
- Builds the canonical LR(1) collection and ACTION/GOTO tables for a grammar,
  reporting conflicts.
- Parses input with the tables of a grammar.
- Compiles regular expressions to NFAs and determinizes them.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

var traceKeys = []string{"lrkit.cli", "lrkit.lr", "lrkit.automata", "lrkit.scanner"}

// setup sets up logging and display.
func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", *rootFlags.trace)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadTables reads a grammar file and creates the parser tables for it.
func loadTables(path string) (*lr.Grammar, *lr.Tables, error) {
	g, err := grammarfile.LoadGrammar(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read grammar %s: %w", path, err)
	}
	tables := lr.NewTableGenerator(g).CreateTables()
	tracer().Infof("grammar %s: %d states, %d conflicts", g.Name, tables.StateCount(), len(tables.Conflicts()))
	return g, tables, nil
}

// writeFile creates a file and lets write fill it.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
