package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/npillmayer/lrkit/automata"
	"github.com/spf13/cobra"
)

var regexFlags = struct {
	dot *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "regex <pattern> [inputs...]",
		Short:   "Compile a regular expression to an NFA and determinize it",
		Example: `  lrkit regex 'a(b|c)*' a abc b`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runRegex,
	}
	regexFlags.dot = cmd.Flags().String("dot", "", "write NFA and DFA to <name>-nfa.dot and <name>-dfa.dot")
	rootCmd.AddCommand(cmd)
}

func runRegex(cmd *cobra.Command, args []string) error {
	nfa, dfa, err := describeRegex(cmd.OutOrStdout(), args[0], args[1:])
	if err != nil {
		return err
	}
	if *regexFlags.dot != "" {
		if err = writeFile(*regexFlags.dot+"-nfa.dot", func(f *os.File) error {
			return nfa.ToGraphViz(f)
		}); err != nil {
			return err
		}
		return writeFile(*regexFlags.dot+"-dfa.dot", func(f *os.File) error {
			return dfa.ToGraphViz(f)
		})
	}
	return nil
}

// describeRegex compiles a pattern and writes the intermediate results of the
// construction to w, followed by the verdict for every input.
func describeRegex(w io.Writer, pattern string, inputs []string) (*automata.NFA, *automata.DFA, error) {
	postfix, err := automata.Postfix(pattern)
	if err != nil {
		return nil, nil, err
	}
	nfa, err := automata.Compile(pattern)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(w, "postfix: %s\n\n%s\n", postfix, nfa)
	closures := nfa.EpsilonClosures()
	fmt.Fprintln(w, "ε-closures:")
	for _, s := range nfa.States() {
		fmt.Fprintf(w, "  %d: %v\n", s, closures[s])
	}
	dfa := automata.Determinize(nfa)
	fmt.Fprintln(w, "\nsubset construction:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  state\t%s\n", strings.Join(dfa.Alphabet, "\t"))
	for _, row := range dfa.SubsetTable() {
		fmt.Fprintf(tw, "  %s\t%s\n", row.State, strings.Join(row.Targets, "\t"))
	}
	if err = tw.Flush(); err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(w, "\n%s", dfa)
	for _, input := range inputs {
		verdict := "reject"
		if dfa.Accepts(input) {
			verdict = "accept"
		}
		fmt.Fprintf(w, "%-6s %q\n", verdict, input)
	}
	tracer().Debugf("pattern %q: %d NFA states, %d DFA states", pattern, nfa.Size(), dfa.Size())
	return nfa, dfa, nil
}
