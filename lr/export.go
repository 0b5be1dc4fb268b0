package lr

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// === Table rendering =======================================================

// ActionCell returns a short string for ACTION[state, a]: "s<n>" for shifts,
// "r<n>" for reductions, "acc" for accept. A conflicting second action is
// appended after a slash. Empty entries yield "".
func (t *Tables) ActionCell(state int, a Symbol) string {
	act, ok := t.Action(state, a)
	if !ok {
		return ""
	}
	cell := shortAction(act)
	for _, c := range t.conflicts {
		if c.State == state && c.Symbol == a {
			cell += "/" + shortAction(c.Incoming)
		}
	}
	return cell
}

// GotoCell returns GOTO[state, A] as a string, or "" if there is no entry.
func (t *Tables) GotoCell(state int, A Symbol) string {
	if to, ok := t.Goto(state, A); ok {
		return fmt.Sprintf("%d", to)
	}
	return ""
}

func shortAction(act Action) string {
	switch a := act.(type) {
	case Shift:
		return fmt.Sprintf("s%d", a.State)
	case Reduce:
		return fmt.Sprintf("r%d", a.Production.Serial)
	case Accept:
		return "acc"
	}
	panic(fmt.Sprintf("unknown action type %T", act))
}

// gotoColumns are the non-terminals of the GOTO table, without the augmented
// start symbol.
func (t *Tables) gotoColumns() []Symbol {
	cols := make([]Symbol, 0, len(t.g.NonTerminals()))
	for _, A := range t.g.NonTerminals() {
		if A != t.g.augStart {
			cols = append(cols, A)
		}
	}
	return cols
}

// Rows returns the combined ACTION/GOTO table as rows of strings, suitable for
// rendering. The first row is a header: state, terminals, non-terminals.
func (t *Tables) Rows() [][]string {
	terms := t.action.Symbols()
	nonterms := t.gotoColumns()
	header := []string{"state"}
	for _, a := range terms {
		header = append(header, string(a))
	}
	for _, A := range nonterms {
		header = append(header, string(A))
	}
	rows := [][]string{header}
	for s := 0; s < t.StateCount(); s++ {
		row := []string{fmt.Sprintf("%d", s)}
		for _, a := range terms {
			row = append(row, t.ActionCell(s, a))
		}
		for _, A := range nonterms {
			row = append(row, t.GotoCell(s, A))
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteText writes the combined ACTION/GOTO table as aligned text.
func (t *Tables) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range t.Rows() {
		if _, err := io.WriteString(tw, strings.Join(row, "\t")+"\t\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Dump is a debugging helper, writing the tables to the tracer.
func (t *Tables) Dump() {
	var b strings.Builder
	_ = t.WriteText(&b)
	tracer().Debugf("--- parser tables for %s ---------------------------", t.g.Name)
	for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		tracer().Debugf(line)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// ConflictReport returns a human readable list of conflicts, one per line.
// For every conflict the items of the conflicting state are listed as well.
func (t *Tables) ConflictReport() string {
	if !t.HasConflicts() {
		return "no conflicts\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d conflict(s) in grammar %s\n", len(t.conflicts), t.g.Name))
	for _, c := range t.conflicts {
		b.WriteString(c.String())
		b.WriteString("\n")
		for _, i := range t.cfsm.State(c.State).Items.Items() {
			b.WriteString("    ")
			b.WriteString(i.String())
			b.WriteString("\n")
		}
	}
	return b.String()
}

// --- HTML ------------------------------------------------------------------

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(t *Tables, w io.Writer) error {
	if t == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return fmt.Errorf("no tables")
	}
	return parserTableAsHTML(t, "GOTO", t.gotoColumns(), t.GotoCell, w)
}

// ActionTableAsHTML exports the LR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(t *Tables, w io.Writer) error {
	if t == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return fmt.Errorf("no tables")
	}
	return parserTableAsHTML(t, "ACTION", t.action.Symbols(), t.ActionCell, w)
}

func parserTableAsHTML(t *Tables, tname string, symvec []Symbol,
	cell func(int, Symbol) string, w io.Writer) error {
	//
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("%s table for %s with %d states<p>", tname, htmlEscape(t.g.Name), t.StateCount()))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		b.WriteString(fmt.Sprintf("<td>%s</td>", htmlEscape(string(A))))
	}
	b.WriteString("</tr>\n")
	var td string // table cell
	for s := 0; s < t.StateCount(); s++ {
		b.WriteString(fmt.Sprintf("<tr><td>state %d</td>\n", s))
		for _, A := range symvec {
			if td = cell(s, A); td == "" {
				td = "&nbsp;"
			}
			b.WriteString("<td>")
			b.WriteString(td)
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func htmlEscape(s string) string {
	return htmlReplacer.Replace(s)
}

// --- GraphViz --------------------------------------------------------------

// ToGraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) ToGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.Items)))
	}
	for _, e := range c.Edges() {
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", e.From, e.To, dotEscape(string(e.Label))))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	var b strings.Builder
	for k, i := range S.Items() {
		if k > 0 {
			b.WriteString("\\l")
		}
		b.WriteString(dotEscape(i.String()))
	}
	b.WriteString("\\l")
	return b.String()
}

var dotReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "{", `\{`, "}", `\}`,
	"|", `\|`, "<", `\<`, ">", `\>`)

func dotEscape(s string) string {
	return dotReplacer.Replace(s)
}
