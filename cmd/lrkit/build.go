package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/lrkit/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var buildFlags = struct {
	tables      *bool
	conflicts   *bool
	firstFollow *bool
	html        *string
	dot         *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "build <grammar file path>",
		Short:   "Build the LR(1) parser tables for a grammar",
		Example: `  lrkit build grammar.txt --tables --conflicts`,
		Args:    cobra.ExactArgs(1),
		RunE:    runBuild,
	}
	buildFlags.tables = cmd.Flags().Bool("tables", false, "print the ACTION/GOTO tables")
	buildFlags.conflicts = cmd.Flags().Bool("conflicts", false, "print a conflict report")
	buildFlags.firstFollow = cmd.Flags().Bool("first-follow", false, "print the FIRST and FOLLOW sets")
	buildFlags.html = cmd.Flags().String("html", "", "write the tables as HTML to a file")
	buildFlags.dot = cmd.Flags().String("dot", "", "write the CFSM in Graphviz format to a file")
	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	g, tables, err := loadTables(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if *buildFlags.firstFollow {
		printSets(out, "FIRST", g.FirstTable())
		printSets(out, "FOLLOW", g.FollowTable())
	}
	if *buildFlags.tables {
		pterm.DefaultTable.WithHasHeader().WithData(tables.Rows()).Render()
	}
	if *buildFlags.conflicts {
		fmt.Fprint(out, tables.ConflictReport())
	}
	if *buildFlags.html != "" {
		err = writeFile(*buildFlags.html, func(f *os.File) error {
			if err := lr.ActionTableAsHTML(tables, f); err != nil {
				return err
			}
			return lr.GotoTableAsHTML(tables, f)
		})
		if err != nil {
			return err
		}
		pterm.Info.Println("tables written to " + *buildFlags.html)
	}
	if *buildFlags.dot != "" {
		err = writeFile(*buildFlags.dot, func(f *os.File) error {
			return tables.CFSM().ToGraphViz(f)
		})
		if err != nil {
			return err
		}
		pterm.Info.Println("CFSM written to " + *buildFlags.dot)
	}
	summary(out, g, tables)
	return nil
}

func summary(w io.Writer, g *lr.Grammar, tables *lr.Tables) {
	fmt.Fprintf(w, "grammar %s: %d productions, %d terminals, %d non-terminals\n",
		g.Name, g.Size(), len(g.Terminals()), len(g.NonTerminals()))
	fmt.Fprintf(w, "LR(1) automaton: %d states, %d conflicts\n",
		tables.StateCount(), len(tables.Conflicts()))
}

func printSets(w io.Writer, title string, rows []lr.SetRow) {
	for _, row := range rows {
		syms := make([]string, len(row.Set))
		for i, A := range row.Set {
			syms[i] = string(A)
		}
		fmt.Fprintf(w, "%s(%s) = { %s }\n", title, row.Symbol, strings.Join(syms, ", "))
	}
}
