package commands

import (
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		args []string
		ok   bool
	}{
		{"cmd reset -seed 4", []string{"reset", "-seed", "4"}, true},
		{"cmd   pause  ", []string{"pause"}, true},
		{"cmd ", nil, true},
		{"hello there", nil, false},
		{"CMD pause", nil, false},
	}
	for _, tt := range tests {
		args, ok := Parse(tt.line)
		if ok != tt.ok || !reflect.DeepEqual(args, tt.args) {
			t.Errorf("Parse(%q) = %q, %v, want %q, %v", tt.line, args, ok, tt.args, tt.ok)
		}
	}
}

func newStepRegistry(got *[]int) *Registry {
	reg := NewRegistry()
	reg.Register("step", "advance n ticks", func(fs *flag.FlagSet) func() error {
		n := fs.Int("n", 1, "ticks")
		return func() error {
			if *n < 1 {
				return errors.New("n must be positive")
			}
			*got = append(*got, *n)
			return nil
		}
	})
	return reg
}

func TestExecuteFreshFlagsPerRun(t *testing.T) {
	var got []int
	reg := newStepRegistry(&got)

	for _, line := range []string{"cmd step -n 5", "cmd step"} {
		handled, err := reg.Run(line)
		if !handled || err != nil {
			t.Fatalf("Run(%q) = %v, %v", line, handled, err)
		}
	}
	if !reflect.DeepEqual(got, []int{5, 1}) {
		t.Fatalf("runs = %v, want [5 1]", got)
	}
}

func TestExecuteErrors(t *testing.T) {
	var got []int
	reg := newStepRegistry(&got)

	tests := []struct {
		args []string
		want string
	}{
		{nil, "missing subcommand"},
		{[]string{"jump"}, "unknown command: jump"},
		{[]string{"step", "-x"}, "step:"},
		{[]string{"step", "extra"}, "unexpected arguments"},
		{[]string{"step", "-n", "0"}, "n must be positive"},
	}
	for _, tt := range tests {
		err := reg.Execute(tt.args)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Execute(%q) = %v, want error containing %q", tt.args, err, tt.want)
		}
	}
	if len(got) != 0 {
		t.Fatalf("failed commands ran: %v", got)
	}
}

func TestRunIgnoresNonCommands(t *testing.T) {
	reg := NewRegistry()
	handled, err := reg.Run("just chatting")
	if handled || err != nil {
		t.Fatalf("Run = %v, %v, want false, nil", handled, err)
	}
}

func TestHelp(t *testing.T) {
	reg := NewRegistry()
	noop := func(*flag.FlagSet) func() error { return func() error { return nil } }
	reg.Register("resume", "continue", noop)
	reg.Register("pause", "stop ticking", noop)

	want := []string{"pause: stop ticking", "resume: continue"}
	if got := reg.Help(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Help = %q, want %q", got, want)
	}
}

func TestShortcuts(t *testing.T) {
	for key, want := range map[rune]string{'p': "cmd pause", ' ': "cmd step", 's': "cmd restart"} {
		if got, ok := Shortcut(key); !ok || got != want {
			t.Errorf("Shortcut(%q) = %q, %v, want %q", key, got, ok, want)
		}
	}
	if _, ok := Shortcut('z'); ok {
		t.Error("Shortcut('z') is bound")
	}
	for key, line := range shortcuts {
		if _, ok := Parse(line); !ok {
			t.Errorf("shortcut %q maps to non-command %q", key, line)
		}
	}
}
