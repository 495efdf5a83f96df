package lyric

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/gregorio-project/gregotex/score"
)

// MarkupError reports a problem in syllable markup.
type MarkupError struct {
	Markup string
	Err    error
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("markup %q: %v", e.Markup, e.Err)
}

func (e *MarkupError) Unwrap() error { return e.Err }

var tagStyles = map[string]score.Style{
	"i":  score.StyleItalic,
	"b":  score.StyleBold,
	"tt": score.StyleTT,
	"sc": score.StyleSmallCaps,
	"ul": score.StyleUnderline,
	"c":  score.StyleColored,
	"e":  score.StyleElision,
	"v":  score.StyleVerbatim,
	"sp": score.StyleSpecialChar,
}

// Tag returns the markup tag of style s, or "".
func Tag(s score.Style) string {
	for name, t := range tagStyles {
		if t == s {
			return name
		}
	}
	return ""
}

// Parse reads syllable markup into a character list. The text is
// normalized to NFC. Tags must nest properly. Braces mark the center of
// the syllable, except inside <v> and <sp>, where they are literal.
func Parse(markup string) ([]score.Character, error) {
	out, err := parse(markup)
	if err != nil {
		return nil, &MarkupError{Markup: markup, Err: err}
	}
	return out, nil
}

func parse(markup string) ([]score.Character, error) {
	z := html.NewTokenizer(strings.NewReader(norm.NFC.String(markup)))
	var (
		out    []score.Character
		stack  []score.Style
		center bool
	)
	raw := func() bool {
		n := len(stack)
		return n > 0 && isRaw(stack[n-1])
	}
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			if n := len(stack); n > 0 {
				return nil, fmt.Errorf("unclosed <%s>", Tag(stack[n-1]))
			}
			if center {
				return nil, errors.New("unclosed center")
			}
			return out, nil

		case html.TextToken:
			for _, r := range string(z.Text()) {
				switch {
				case raw():
				case r == '{':
					if center {
						return nil, errors.New("nested center")
					}
					center = true
					out = append(out, score.Begin(score.StyleForcedCenter))
					continue
				case r == '}':
					if !center {
						return nil, errors.New("unbalanced }")
					}
					center = false
					out = append(out, score.End(score.StyleForcedCenter))
					continue
				}
				out = append(out, score.Lit(r))
			}

		case html.StartTagToken:
			name, _ := z.TagName()
			s, ok := tagStyles[string(name)]
			if !ok {
				return nil, fmt.Errorf("unknown tag <%s>", name)
			}
			if raw() {
				return nil, fmt.Errorf("<%s> inside <%s>", name, Tag(stack[len(stack)-1]))
			}
			stack = append(stack, s)
			out = append(out, score.Begin(s))

		case html.EndTagToken:
			name, _ := z.TagName()
			s, ok := tagStyles[string(name)]
			if !ok {
				return nil, fmt.Errorf("unknown tag </%s>", name)
			}
			if n := len(stack); n == 0 || stack[n-1] != s {
				return nil, fmt.Errorf("unexpected </%s>", name)
			}
			stack = stack[:len(stack)-1]
			out = append(out, score.End(s))

		default:
			return nil, fmt.Errorf("unsupported markup %q", z.Raw())
		}
	}
}

// Markup returns chars written in the markup read by [Parse]. Center
// markers become braces, and styles with no tag are dropped.
func Markup(chars []score.Character) string {
	return String(chars, markupStyler{})
}

type markupStyler struct{}

func (markupStyler) BeginStyle(w io.Writer, s score.Style) {
	if s.IsCenter() {
		io.WriteString(w, "{")
	} else if t := Tag(s); t != "" {
		fmt.Fprintf(w, "<%s>", t)
	}
}

func (markupStyler) EndStyle(w io.Writer, s score.Style) {
	if s.IsCenter() {
		io.WriteString(w, "}")
	} else if t := Tag(s); t != "" {
		fmt.Fprintf(w, "</%s>", t)
	}
}

func (markupStyler) Char(w io.Writer, r rune) {
	io.WriteString(w, html.EscapeString(string(r)))
}

func (markupStyler) Verbatim(w io.Writer, text string) {
	fmt.Fprintf(w, "<v>%s</v>", html.EscapeString(text))
}

func (markupStyler) Special(w io.Writer, text string) {
	fmt.Fprintf(w, "<sp>%s</sp>", html.EscapeString(text))
}
