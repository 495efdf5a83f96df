// Package checks provides the assertions of score script tests.
//
// A check is a statement whose body reads "what op want". The checks
// compare one piece of a result against want and return an empty string
// when the comparison holds, or a message saying what differed:
//
//	st := script.Statement{Command: script.Command{Name: "macro", Body: "GreGlyph contains {g}"}}
//	if msg := checks.Macro(st, tex); msg != "" {
//		log.Fatal(msg)
//	}
package checks

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ericchiang/css"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gregorio-project/gregotex/script"
)

// Macro checks the output lines that start with a TeX macro.
//
// The body is "name op want", where name is the macro without its
// backslash. The first line of tex starting with \name is compared with
// want using [Text]:
//
//	GreBeginScore contains {4}%
//	GreSyllable ~ \{1\}\{%$
//
// The extra operator "count" compares the number of such lines:
//
//	GreGlyph count 3
//
// Only whole macro names match: GreNewLine does not match a
// \GreNewLineWithSpace line.
func Macro(st script.Statement, tex string) string {
	name, op, want := script.ParseArgs3(st.Body)
	if name == "" {
		return "missing macro name"
	}
	var lines []string
	for _, l := range strings.Split(tex, "\n") {
		rest, ok := strings.CutPrefix(l, `\`+name)
		if ok && !startsWithLetter(rest) {
			lines = append(lines, l)
		}
	}
	if op == "count" {
		return count(name, len(lines), want)
	}
	if msg, ok := Text(name, op, "_", want); !ok {
		return msg
	}
	if len(lines) == 0 {
		return fmt.Sprintf("no line starts with \\%s", name)
	}
	msg, _ := Text(`\`+name, op, lines[0], want)
	return msg
}

func startsWithLetter(s string) bool {
	return s != "" && isLetter(s[0])
}

// Lyric checks the styles of syllable markup.
//
// The body is "selector op want". The markup is read as an HTML fragment,
// so that styles are elements, and the inner markup of the first element
// matching the CSS selector is compared with want using [Text]:
//
//	i == Ky
//	b>sc contains Al
//	v count 0
//
// Selectors must not contain spaces; use the ">" combinator instead of
// the descendant combinator. As with [Macro], "count" compares the
// number of matches.
//
// Tags that are not HTML elements, such as <sc> and <v>, are read as
// spans of that class, and selectors naming them are rewritten to match:
// "b>sc" selects what "b>.sc" selects.
func Lyric(st script.Statement, markup string) string {
	selector, op, want := script.ParseArgs3(st.Body)
	if op != "count" {
		if msg, ok := Text(selector, op, "_", want); !ok {
			return msg
		}
	}
	sel, err := css.Parse(classSelector(selector))
	if err != nil {
		return fmt.Sprintf("bad selector %q: %v", selector, err)
	}
	doc, err := html.Parse(strings.NewReader(htmlMarkup(markup)))
	if err != nil {
		return fmt.Sprintf("reading markup: %v", err)
	}
	found := sel.Select(doc)
	if op == "count" {
		return count(selector, len(found), want)
	}
	if len(found) == 0 {
		return fmt.Sprintf("no element matches %q", selector)
	}
	var b bytes.Buffer
	for c := found[0].FirstChild; c != nil; c = c.NextSibling {
		html.Render(&b, c)
	}
	msg, _ := Text(selector, op, b.String(), want)
	return msg
}

// htmlMarkup rewrites the tags of markup that are not HTML elements
// into spans of the tag's class.
func htmlMarkup(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != 0 {
				break
			}
			if tt == html.StartTagToken {
				fmt.Fprintf(&b, `<span class="%s">`, name)
			} else {
				b.WriteString("</span>")
			}
			continue
		}
		b.Write(z.Raw())
	}
}

// classSelector rewrites the type selectors of sel that name no HTML
// element into class selectors.
func classSelector(sel string) string {
	var b strings.Builder
	start := true
	for i := 0; i < len(sel); {
		if start && isLetter(sel[i]) {
			j := i
			for j < len(sel) && (isLetter(sel[j]) || sel[j] >= '0' && sel[j] <= '9' || sel[j] == '-') {
				j++
			}
			if atom.Lookup([]byte(sel[i:j])) == 0 {
				b.WriteByte('.')
			}
			b.WriteString(sel[i:j])
			i, start = j, false
			continue
		}
		start = strings.IndexByte(">+~ ,", sel[i]) >= 0
		b.WriteByte(sel[i])
		i++
	}
	return b.String()
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func count(what string, n int, want string) string {
	if want == "" {
		return "count needs a number"
	}
	msg, _ := Text(what+" count", "==", strconv.Itoa(n), want)
	return msg
}

// Text compares got with want using op and returns a message if the
// comparison fails. The operators are == and != for equality, ~ and !~
// for a regular expression match, and contains and !contains for a
// substring.
//
// When valid is false the check itself is wrong (unknown operator, bad
// regular expression, missing want) and the message says so.
func Text(what, op, got, want string) (msg string, valid bool) {
	var re *regexp.Regexp
	switch op {
	case "~", "!~":
		var err error
		if re, err = regexp.Compile(want); err != nil {
			return fmt.Sprintf("bad regexp %#q: %v", want, err), false
		}
	case "==", "!=", "contains", "!contains":
		if want == "" {
			return fmt.Sprintf("%s needs a non-empty value", op), false
		}
	default:
		return fmt.Sprintf("unknown operator %q", op), false
	}

	var fail bool
	switch op {
	case "==":
		if got != want {
			return fmt.Sprintf("%s = %#q, want %#q", what, got, want), true
		}
	case "!=":
		if got == want {
			return fmt.Sprintf("%s = %#q (but should not)", what, want), true
		}
	case "~":
		fail = !re.MatchString(got)
	case "!~":
		fail = re.MatchString(got)
	case "contains":
		fail = !strings.Contains(got, want)
	case "!contains":
		fail = strings.Contains(got, want)
	}
	if fail {
		return fmt.Sprintf("%s %s %#q fails\t%s", what, op, want, indent(got)), true
	}
	return "", true
}

func indent(text string) string {
	switch strings.TrimRight(text, "\n") {
	case "":
		if text == "" {
			return "(empty)"
		}
		return "(blank lines)"
	}
	return strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\n\t")
}
