package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/npillmayer/lrkit/lr"
	"github.com/npillmayer/lrkit/lr/lr1"
	"github.com/npillmayer/lrkit/lr/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	tree      *bool
	envelope  *bool
	justTypes *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path> <input file path>",
		Short: "Parse a text file with the LR(1) tables of a grammar",
		Example: `  lrkit parse grammar.txt input.txt --tree
  lrkit parse grammar.txt input.txt --envelope`,
		Args: cobra.ExactArgs(2),
		RunE: runParse,
	}
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print the parse tree")
	parseFlags.envelope = cmd.Flags().Bool("envelope", false, "print the result as a JSON envelope")
	parseFlags.justTypes = cmd.Flags().Bool("justtypes", false, "replace lexemes by their token types")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v != nil {
			err, ok := v.(error)
			if !ok {
				retErr = fmt.Errorf("an unexpected error occurred: %v", v)
				return
			}
			retErr = err
		}
	}()
	g, tables, err := loadTables(args[0])
	if err != nil {
		return err
	}
	input, err := ioutil.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("cannot read input %s: %w", args[1], err)
	}
	res := parseInput(g, tables, string(input), *parseFlags.justTypes)
	out := cmd.OutOrStdout()
	if *parseFlags.envelope {
		return writeEnvelope(out, res)
	}
	if res.err != nil {
		return res.err
	}
	pterm.Info.Println("input accepted")
	if *parseFlags.tree && res.tree != nil {
		renderTree(res.tree)
	}
	return nil
}

type parseResult struct {
	accepted  bool
	err       error
	tree      *lr1.Node
	conflicts []lr.Conflict
}

// parseInput tokenizes and parses an input. The lexer rules of the grammar are
// used if present, otherwise the input is read as a list of terminal names.
func parseInput(g *lr.Grammar, tables *lr.Tables, input string, justTypes bool) parseResult {
	res := parseResult{conflicts: tables.Conflicts()}
	var scan scanner.Tokenizer
	if len(g.LexRules) > 0 {
		lexer, err := scanner.NewLexer(g.LexRules)
		if err != nil {
			res.err = err
			return res
		}
		if justTypes {
			tokens, err := lexer.Tokenize(input)
			if err != nil {
				res.err = err
				return res
			}
			scan = scanner.Types(tokens)
		} else if scan, err = lexer.Scanner(input); err != nil {
			res.err = err
			return res
		}
	} else {
		scan = scanner.Words(input)
	}
	p := lr1.NewParser(tables, lr1.GenerateTree(true))
	res.accepted, res.err = p.Parse(scan)
	res.tree = p.Tree()
	tracer().Debugf("parse result: accepted=%v, error=%v", res.accepted, res.err)
	return res
}

// --- JSON envelope ---------------------------------------------------------

type envelope struct {
	OK        bool           `json:"ok"`
	Message   string         `json:"message,omitempty"`
	Conflicts []conflictJSON `json:"conflicts"`
	AST       *nodeJSON      `json:"ast,omitempty"`
}

type conflictJSON struct {
	Type   string `json:"type"`
	State  int    `json:"state"`
	Symbol string `json:"symbol"`
}

type nodeJSON struct {
	Symbol   string      `json:"symbol"`
	Lexeme   string      `json:"lexeme,omitempty"`
	From     uint64      `json:"from"`
	To       uint64      `json:"to"`
	Children []*nodeJSON `json:"children,omitempty"`
}

func makeEnvelope(res parseResult) envelope {
	env := envelope{
		OK:        res.err == nil && res.accepted,
		Conflicts: make([]conflictJSON, len(res.conflicts)),
	}
	for i, c := range res.conflicts {
		env.Conflicts[i] = conflictJSON{
			Type:   string(c.Kind),
			State:  c.State,
			Symbol: string(c.Symbol),
		}
	}
	if res.err != nil {
		env.Message = res.err.Error()
	}
	if res.tree != nil {
		env.AST = nodeToJSON(res.tree)
	}
	return env
}

func nodeToJSON(n *lr1.Node) *nodeJSON {
	jn := &nodeJSON{
		Symbol: string(n.Symbol),
		Lexeme: n.Lexeme,
		From:   n.Span.From(),
		To:     n.Span.To(),
	}
	for _, ch := range n.Children {
		jn.Children = append(jn.Children, nodeToJSON(ch))
	}
	return jn
}

func writeEnvelope(w io.Writer, res parseResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(makeEnvelope(res))
}

// --- Tree output -----------------------------------------------------------

func renderTree(root *lr1.Node) {
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledList(root))).Render()
}

func leveledList(root *lr1.Node) pterm.LeveledList {
	ll := pterm.LeveledList{}
	root.Walk(func(node *lr1.Node, depth int) {
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: node.Label()})
	})
	return ll
}
