package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrkit/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	init *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file path>",
		Short: "Parse input lines interactively",
		Long: `repl reads input lines and parses each of them, printing the parse tree.
Lines starting with ':' are commands:
  :tables     print the ACTION/GOTO tables
  :conflicts  print the conflict report
  :quit       leave the REPL`,
		Args: cobra.ExactArgs(1),
		RunE: runREPL,
	}
	replFlags.init = cmd.Flags().String("init", "", "file with input lines to parse first")
	rootCmd.AddCommand(cmd)
}

// Intp is our interpreter object.
type Intp struct {
	g      *lr.Grammar
	tables *lr.Tables
	repl   *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	g, tables, err := loadTables(args[0])
	if err != nil {
		return err
	}
	repl, err := readline.New("lrkit> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{g: g, tables: tables, repl: repl}
	pterm.Info.Println("Welcome to the lrkit REPL")
	tracer().Infof("Quit with <ctrl>D")
	intp.loadInitFile(*replFlags.init)
	intp.REPL()
	return nil
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		intp.Eval(line)
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: " + err.Error())
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval parses a line of input or executes a command. It returns true if the
// user asked to quit.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":tables":
		pterm.DefaultTable.WithHasHeader().WithData(intp.tables.Rows()).Render()
		return false
	case ":conflicts":
		pterm.Println(intp.tables.ConflictReport())
		return false
	}
	res := parseInput(intp.g, intp.tables, line, false)
	if res.err != nil {
		pterm.Error.Println(res.err.Error())
		return false
	}
	if res.tree != nil {
		renderTree(res.tree)
	} else {
		pterm.Info.Println("accepted")
	}
	return false
}
