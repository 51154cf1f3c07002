package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdl/internal/engine"
	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/format"
)

const (
	replPrompt     = "leapdl> "
	replContPrompt = "   ...> "
)

// ReplOptions holds options for the repl command.
type ReplOptions struct {
	History string // History file path; empty uses the user cache directory
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	opts := &ReplOptions{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive Datalog shell",
		Long: `Start an interactive shell that parses Datalog statements as you type.

A statement may span several lines and is complete once a line ends with
".". Each statement is echoed in canonical form and added to the session
program. Type .help for shell commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.History, "history", "", "History file (default: user cache directory)")

	return cmd
}

func runRepl(cmd *cobra.Command, opts *ReplOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	session := newReplSession(cmdCtx.Engine, cmd.OutOrStdout(), cmd.ErrOrStderr())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyPath(opts.History),
		AutoComplete:    session,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "LeapDL REPL (source: %s)\n", cmdCtx.Engine.SourceDir())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.discard()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		quit := session.handleLine(line)
		if quit {
			break
		}
		rl.SetPrompt(session.prompt())
	}

	return nil
}

// historyPath returns the REPL history file, or "" to disable history.
func historyPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "leapdl")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

// replSession is the line-oriented state of the REPL, independent of the
// terminal.
type replSession struct {
	eng    *engine.Engine
	out    io.Writer
	errOut io.Writer

	pending strings.Builder
	prog    *datalog.Program
}

func newReplSession(eng *engine.Engine, out, errOut io.Writer) *replSession {
	return &replSession{
		eng:    eng,
		out:    out,
		errOut: errOut,
		prog:   datalog.NewProgram(),
	}
}

func (s *replSession) prompt() string {
	if s.pending.Len() > 0 {
		return replContPrompt
	}
	return replPrompt
}

func (s *replSession) discard() {
	s.pending.Reset()
}

// handleLine processes one input line and reports whether the session ends.
func (s *replSession) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if s.pending.Len() == 0 && strings.HasPrefix(line, ".") {
		return s.handleDotCommand(line)
	}

	s.pending.WriteString(line)
	if !strings.HasSuffix(line, ".") {
		s.pending.WriteString("\n")
		return false
	}

	src := s.pending.String()
	s.pending.Reset()
	s.evaluate(src)
	return false
}

// evaluate parses src and adds its statements to the session program.
func (s *replSession) evaluate(src string) {
	prog, err := s.eng.ParseSource(src)
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return
	}
	for _, stmt := range prog.Statements() {
		switch st := stmt.(type) {
		case datalog.Atom:
			s.prog.AddFact(st)
		case *datalog.Rule:
			s.prog.AddRule(st)
		case datalog.Query:
			s.prog.AddQuery(st)
		}
		_, _ = fmt.Fprintln(s.out, format.Statement(stmt))
	}
}

func (s *replSession) handleDotCommand(line string) bool {
	command := strings.ToLower(strings.Fields(line)[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".program":
		if s.prog.Len() == 0 {
			_, _ = fmt.Fprintln(s.out, "(empty program)")
			break
		}
		_, _ = fmt.Fprint(s.out, format.Program(s.prog))

	case ".lint":
		diags := s.eng.Lint(s.prog)
		if len(diags) == 0 {
			_, _ = fmt.Fprintln(s.out, "No lint issues found")
			break
		}
		for _, d := range diags {
			_, _ = fmt.Fprintf(s.out, "%s: %s %s: %s\n", d.Pos, d.Severity, d.RuleID, d.Message)
		}

	case ".reset":
		s.prog = datalog.NewProgram()
		s.pending.Reset()
		_, _ = fmt.Fprintln(s.out, "Program cleared")

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .program        Print the statements entered so far
  .lint           Run the lint rules on the session program
  .reset          Clear the session program
  .quit / .exit   Exit the REPL

Tips:
  - Statements end with a period (.) and may span several lines
  - Rules use ":=" and queries start with "?", as in ?path(1, ?y).
  - Tab completion works for commands and known relations
`
	_, _ = fmt.Fprintln(w, help)
}

// relations returns the relation names used in the session program.
func (s *replSession) relations() []string {
	seen := make(map[string]bool)
	add := func(name string) { seen[name] = true }
	for _, stmt := range s.prog.Statements() {
		switch st := stmt.(type) {
		case datalog.Atom:
			add(st.Relation())
		case *datalog.Rule:
			add(st.Head().Relation())
			for _, a := range st.Body() {
				add(a.Relation())
			}
		case datalog.Query:
			add(st.Relation())
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Do implements readline.AutoCompleter over the dot commands and the
// relations defined so far.
func (s *replSession) Do(line []rune, pos int) ([][]rune, int) {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".program"),
		readline.PcItem(".lint"),
		readline.PcItem(".reset"),
		readline.PcItem(".quit"),
	}
	for _, name := range s.relations() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...).Do(line, pos)
}
