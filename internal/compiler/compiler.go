// Package compiler turns an option model snapshot into a sqlmap command
// line. Compilation is a pure syntactic assembly: no side effects, no
// semantic validation, and byte-identical output for identical snapshots.
package compiler

import (
	"strings"

	"github.com/secmux/sqlmux/internal/model"
)

// ProgramName is the fixed first token of every compiled command.
const ProgramName = "sqlmap"

// Token is one flag (optionally with a value) of the compiled command.
type Token struct {
	// Flag is the command-line flag, e.g. "--risk" or "-u".
	Flag string
	// Value is the flag's value; empty for bare boolean flags.
	Value string
	// HasValue distinguishes a bare flag from a flag with an empty value.
	HasValue bool
	// Quoted wraps the value in double quotes in the display form.
	Quoted bool
	// SpaceSep renders flag and value as two words instead of flag=value.
	SpaceSep bool
}

// Command is an immutable compiled command: the program name followed by an
// ordered token sequence.
type Command struct {
	tokens []Token
}

// Empty reports whether the command carries no tokens beyond the program
// name.
func (c Command) Empty() bool {
	return len(c.tokens) == 0
}

// Tokens returns a copy of the token sequence.
func (c Command) Tokens() []Token {
	out := make([]Token, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// String renders the shell-style display form. Text values are wrapped in
// double quotes verbatim, with no escaping of embedded quotes; this mirrors
// how the command is shown to the user, not how the process is launched.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(ProgramName)
	for _, t := range c.tokens {
		b.WriteByte(' ')
		b.WriteString(t.render())
	}
	return b.String()
}

func (t Token) render() string {
	if !t.HasValue {
		return t.Flag
	}
	value := t.Value
	if t.Quoted {
		value = `"` + value + `"`
	}
	if t.SpaceSep {
		return t.Flag + " " + value
	}
	return t.Flag + "=" + value
}

// Argv renders the argument vector used to launch the process directly,
// without shell interpretation: values are passed as-is, unquoted.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.tokens)+1)
	argv = append(argv, ProgramName)
	for _, t := range c.tokens {
		switch {
		case !t.HasValue:
			argv = append(argv, t.Flag)
		case t.SpaceSep:
			argv = append(argv, t.Flag, t.Value)
		default:
			argv = append(argv, t.Flag+"="+t.Value)
		}
	}
	return argv
}

// Compile assembles the command for an option model snapshot. Options are
// emitted in schema order: text options only when non-empty, booleans only
// when true, choice options only when off their default. The six technique
// toggles fold into a single --technique= token at their block's position,
// letters in canonical order regardless of toggle order.
func Compile(opts *model.Options) Command {
	var tokens []Token
	techniqueDone := false

	for _, spec := range model.Schema() {
		switch spec.Kind {
		case model.KindText:
			if v := opts.Get(spec.Key); v != "" {
				tokens = append(tokens, Token{
					Flag:     spec.Flag,
					Value:    v,
					HasValue: true,
					Quoted:   true,
					SpaceSep: spec.SpaceSep,
				})
			}
		case model.KindBool:
			if opts.Bool(spec.Key) {
				tokens = append(tokens, Token{Flag: spec.Flag})
			}
		case model.KindChoice:
			if v := opts.Get(spec.Key); v != spec.Default {
				tokens = append(tokens, Token{Flag: spec.Flag, Value: v, HasValue: true})
			}
		case model.KindTechnique:
			if techniqueDone {
				continue
			}
			techniqueDone = true
			if letters := techniqueLetters(opts); letters != "" {
				tokens = append(tokens, Token{Flag: "--technique", Value: letters, HasValue: true})
			}
		}
	}

	return Command{tokens: tokens}
}

// techniqueLetters collects the letters of enabled techniques in schema
// order, which is the canonical B E U S T Q ordering.
func techniqueLetters(opts *model.Options) string {
	var b strings.Builder
	for _, spec := range model.Schema() {
		if spec.Kind != model.KindTechnique {
			continue
		}
		if opts.Bool(spec.Key) {
			b.WriteString(spec.Letter)
		}
	}
	return b.String()
}
