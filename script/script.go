// Package script reads chant scores written as line-based scripts.
//
// A score script is a sequence of commands, one per line. The first word
// of a line names the command and the rest is its body. There is no
// quoting and no escaping:
//
//	header office-part Introitus
//	clef c4
//	syllable begin <i>Ad</i>
//	glyph pes
//	note g
//	note h episema
//	syllable end te
//	bar maior
//
// A body continues on the following lines when they start with a tab.
// Lines starting with '#' are comments and attach to the next command.
//
// # Templates
//
// The builtin define names a template with parameters, and later
// commands with that name expand to the template body with $param
// replaced by the arguments of the call:
//
//	define punctum p
//		glyph one-note
//		note $p
//	punctum g
//
// The builtin include reads another script of the same file system
// before going on. The ".lb" extension may be left out. Include paths
// are flat: they may not contain a slash.
//
// # Score commands
//
// Commands before the first syllable set up the score: header, name,
// staff-lines, initial-style, mode, annotation, voices and clef. A
// syllable command opens a syllable, and the commands that follow add
// text (translation, above-lines, flags) or elements (element, glyph,
// note, alt, gspace, gverb, gcustos, bar, clef, custos, space, eol, verb,
// text-above, nlba) to it. [Build] turns a script into a [score.Score].
//
// # Errors
//
// Problems in a script are reported as [*Error], which carries the file
// and line of the offending command, or as [*SyntaxError] when a line
// cannot be read at all.
package script

import (
	"cmp"
	"fmt"
	"strings"
	"unicode"
)

// Command is one command of a script as it appears in the source.
type Command struct {
	// Line is the line number of the command (1-indexed), not of the
	// comments before it.
	Line int

	// Comment holds the comment lines right before the command, each with
	// its leading '#' and trailing newline.
	Comment string

	// Name is the first word of the command. It is empty for a blank line.
	Name string

	// Body is the rest of the command. Continuation lines are included
	// without their leading tab.
	Body string
}

// String returns the command as source text, ending in a newline.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	body := strings.TrimSuffix(c.Body, "\n")
	if strings.HasPrefix(body, "\n") {
		b.WriteString(body)
	} else if body = strings.TrimLeftFunc(body, unicode.IsSpace); body != "" {
		b.WriteByte(' ')
		b.WriteString(body)
	}
	b.WriteByte('\n')
	return b.String()
}

// Args splits the body into at most n arguments. See [ParseArgs].
func (c Command) Args(n int) Args {
	return ParseArgs(c.Body, n)
}

// Statement is a command after template expansion.
type Statement struct {
	Command

	// File is the script the command was read from.
	File string

	// Stack holds the template calls that produced the command,
	// outermost first. It is empty for a command written at top level.
	Stack []Statement
}

// Where returns the location of the statement: "file:line" for a
// top-level command, and for a command coming from a template the
// location of the outermost call followed by "name@n" for each template
// on the way, n being the line within that template.
func (s Statement) Where() string {
	file := cmp.Or(s.File, "<unknown>")
	if len(s.Stack) == 0 {
		if s.Line == 0 {
			return file
		}
		return fmt.Sprintf("%s:%d", file, s.Line)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d", cmp.Or(s.Stack[0].File, file), s.Stack[0].Line)
	for i, c := range s.Stack {
		line := s.Line
		if i+1 < len(s.Stack) {
			line = s.Stack[i+1].Line
		}
		fmt.Fprintf(&b, ": %s@%d", c.Name, line)
	}
	return b.String()
}

// cutField returns the first whitespace-separated field of s and what
// follows the run of whitespace after it.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// Args is a list of arguments cut from a command body.
type Args []string

// ParseArgs splits s into at most n whitespace-separated arguments; the
// last one keeps the rest of s. A body of only whitespace has no
// arguments. A negative n means no limit.
func ParseArgs(s string, n int) Args {
	var args Args
	for s != "" && n != 0 {
		if n == 1 {
			if strings.TrimSpace(s) != "" {
				args = append(args, s)
			}
			break
		}
		var arg string
		arg, s = cutField(s)
		if arg == "" {
			break
		}
		args = append(args, arg)
		n--
	}
	return args
}

// ParseArgs2 splits s into two arguments.
func ParseArgs2(s string) (a, b string) {
	args := ParseArgs(s, 2)
	return args.At(0), args.At(1)
}

// ParseArgs3 splits s into three arguments.
func ParseArgs3(s string) (a, b, c string) {
	args := ParseArgs(s, 3)
	return args.At(0), args.At(1), args.At(2)
}

// At returns argument i without its trailing newline, or "" if there is
// no such argument.
func (a Args) At(i int) string {
	if i < 0 || i >= len(a) {
		return ""
	}
	return strings.TrimSuffix(a[i], "\n")
}
