package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// Setup declares a command's flags on fs and returns the function to run once they are parsed.
// It is called for every invocation so flag values never leak from one run into the next.
type Setup func(fs *flag.FlagSet) func() error

// Command is a named console command.
type Command struct {
	Name  string
	Usage string
	setup Setup
}

// Registry holds commands by name. Add commands with Register; run them with Execute or Run.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a command. name is the first token after "cmd" (e.g. "reset").
func (r *Registry) Register(name, usage string, setup Setup) {
	r.cmds[name] = &Command{Name: name, Usage: usage, setup: setup}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help returns one "name: usage" line per command, sorted by name.
func (r *Registry) Help() []string {
	names := r.Names()
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = name + ": " + r.cmds[name].Usage
	}
	return lines
}

// Parse interprets line as a console line. If line starts with "cmd " (case-sensitive),
// the rest is tokenized by spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the command in args[0] with args[1:] as flag arguments.
// Returns an error for a missing or unknown command, a flag parse error, or from the command itself.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	run := cmd.setup(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments %q", name, fs.Args())
	}
	return run()
}

// Run parses and executes a console line. handled is false when the line is not a command.
func (r *Registry) Run(line string) (handled bool, err error) {
	args, ok := Parse(line)
	if !ok {
		return false, nil
	}
	return true, r.Execute(args)
}

// shortcuts maps single keys to console lines for frontends without a console open.
var shortcuts = map[rune]string{
	'p': "cmd pause",
	'c': "cmd resume",
	' ': "cmd step",
	'r': "cmd reset",
	's': "cmd restart",
	'i': "cmd stats",
}

// Shortcut returns the console line bound to key, if any.
func Shortcut(key rune) (line string, ok bool) {
	line, ok = shortcuts[key]
	return line, ok
}
