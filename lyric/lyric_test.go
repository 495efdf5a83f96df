package lyric

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"kr.dev/diff"

	"github.com/gregorio-project/gregotex/score"
)

type recorder struct {
	calls []string
}

func (r *recorder) BeginStyle(w io.Writer, s score.Style) {
	r.calls = append(r.calls, "begin "+s.String())
}

func (r *recorder) EndStyle(w io.Writer, s score.Style) {
	r.calls = append(r.calls, "end "+s.String())
}

func (r *recorder) Char(w io.Writer, c rune) {
	r.calls = append(r.calls, "char "+string(c))
}

func (r *recorder) Verbatim(w io.Writer, text string) {
	r.calls = append(r.calls, "verbatim "+text)
}

func (r *recorder) Special(w io.Writer, text string) {
	r.calls = append(r.calls, "special "+text)
}

func render(chars []score.Character) string {
	var b strings.Builder
	for _, c := range chars {
		b.WriteString(c.String())
	}
	return b.String()
}

func mustParse(t *testing.T, markup string) []score.Character {
	t.Helper()
	chars, err := Parse(markup)
	if err != nil {
		t.Fatal(err)
	}
	return chars
}

func TestWrite(t *testing.T) {
	tests := []struct {
		markup string
		skip   bool
		want   []string
	}{
		{
			markup: "Ky",
			want:   []string{"char K", "char y"},
		},
		{
			markup: `A<v>\GreForceHyphen{x}</v>b`,
			want:   []string{"char A", `verbatim \GreForceHyphen{x}`, "char b"},
		},
		{
			markup: "<sp>'ae</sp>",
			want:   []string{"special 'ae"},
		},
		{
			markup: "<i>K{y}rie</i>",
			skip:   true,
			want: []string{
				"begin italic",
				"begin forced-center", "char y", "end forced-center",
				"char r", "char i", "char e",
				"end italic",
			},
		},
		{
			markup: "<b>K</b>{y}",
			skip:   true,
			want:   []string{"begin forced-center", "char y", "end forced-center"},
		},
		{
			markup: "Ky",
			skip:   true,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.markup, func(t *testing.T) {
			var r recorder
			Write(io.Discard, mustParse(t, tt.markup), &r, tt.skip)
			diff.Test(t, t.Errorf, r.calls, tt.want)
		})
	}
}

func TestWriteUnterminatedVerbatim(t *testing.T) {
	chars := []score.Character{score.Begin(score.StyleVerbatim), score.Lit('x')}
	var r recorder
	Write(io.Discard, chars, &r, false)
	diff.Test(t, t.Errorf, r.calls, []string{"verbatim x"})
}

func TestParse(t *testing.T) {
	tests := []struct {
		markup string
		want   string
	}{
		{"Ky", "Ky"},
		{"<i>Ky</i>rie", "<italic>Ky</italic>rie"},
		{"{A}men", "<forced-center>A</forced-center>men"},
		{"<v>{x}</v>", "<verbatim>{x}</verbatim>"},
		{"<sc>De</sc>&amp;", "<small-caps>De</small-caps>&"},
		{"é", "é"},
		{"<b><i>x</i></b>", "<bold><italic>x</italic></bold>"},
	}
	for _, tt := range tests {
		got := render(mustParse(t, tt.markup))
		if got != tt.want {
			t.Errorf("Parse(%q) = %q; want %q", tt.markup, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		markup string
		want   string
	}{
		{"<x>a</x>", "unknown tag <x>"},
		{"<i>a</b>", "unexpected </b>"},
		{"<i>a", "unclosed <i>"},
		{"{a{b}}", "nested center"},
		{"a}", "unbalanced }"},
		{"{a", "unclosed center"},
		{"<v><i>a</i></v>", "<i> inside <v>"},
		{"a<br/>b", "unsupported markup"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.markup)
		var me *MarkupError
		if !errors.As(err, &me) {
			t.Errorf("Parse(%q) error = %v; want *MarkupError", tt.markup, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Parse(%q) error = %q; want it to contain %q", tt.markup, err, tt.want)
		}
	}
}

func TestSplitCenter(t *testing.T) {
	tests := []struct {
		markup                string
		before, center, after string
	}{
		{"Ky", "K", "y", ""},
		{"Kyrie", "K", "y", "rie"},
		{"quae", "qu", "ae", ""},
		{"e", "", "e", ""},
		{"{K}y", "", "K", "y"},
		{"<i>Ky</i>rie", "<italic>K</italic>", "<italic>y</italic>", "rie"},
		{"<b>Glo</b>", "<bold>Gl</bold>", "<bold>o</bold>", ""},
		{"Xz", "Xz", "", ""},
		{"<v>ae</v>b", "<verbatim>ae</verbatim>b", "", ""},
		{"Ælé", "", "Æ", "lé"},
		{"<i>A</i>men", "", "<italic>A</italic>", "men"},
	}
	for _, tt := range tests {
		b, c, a := SplitCenter(mustParse(t, tt.markup))
		got := fmt.Sprintf("%s|%s|%s", render(b), render(c), render(a))
		want := fmt.Sprintf("%s|%s|%s", tt.before, tt.center, tt.after)
		if got != want {
			t.Errorf("SplitCenter(%q) = %q; want %q", tt.markup, got, want)
		}
	}
}

func TestInitialCenter(t *testing.T) {
	tests := []struct {
		markup string
		want   string
	}{
		{"Ky", "K<center>y</center>"},
		{"Glo", "G<center>lo</center>"},
		{"Kyrie", "K<center>y</center>rie"},
		{"{A}men", "A<center>me</center>n"},
		{"<i>Ky</i>", "<italic>K<center>y</italic></center>"},
	}
	for _, tt := range tests {
		got := render(InitialCenter(mustParse(t, tt.markup)))
		if got != tt.want {
			t.Errorf("InitialCenter(%q) = %q; want %q", tt.markup, got, tt.want)
		}
	}

	_, c, a := SplitCenter(InitialCenter(mustParse(t, "<i>Ky</i>")))
	if got := render(c); got != "<italic>y</italic>" {
		t.Errorf("center = %q", got)
	}
	if len(a) != 0 {
		t.Errorf("after = %q; want empty", render(a))
	}
}

func TestFirstLetter(t *testing.T) {
	tests := []struct {
		markup string
		want   string
	}{
		{"Ky", "K"},
		{"<b>Ky</b>", "<bold>K</bold>"},
		{"<i><b>A</b>men</i>", "<italic><bold>A</bold></italic>"},
		{"<v>x</v>y", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := render(FirstLetter(mustParse(t, tt.markup)))
		if got != tt.want {
			t.Errorf("FirstLetter(%q) = %q; want %q", tt.markup, got, tt.want)
		}
	}
}

func TestIsVowel(t *testing.T) {
	for _, r := range "aeiouyAEIOUYéÿœÆ" {
		if !IsVowel(r) {
			t.Errorf("IsVowel(%q) = false", r)
		}
	}
	for _, r := range "kqKrç-1 " {
		if IsVowel(r) {
			t.Errorf("IsVowel(%q) = true", r)
		}
	}
}

func TestMarkup(t *testing.T) {
	for _, m := range []string{
		"Kyrie",
		"<i>Ky</i>rie",
		"{A}men",
		"<b><sc>Al</sc></b>le",
		"<v>\\hfil</v>x",
		"<sp>ae</sp>",
		"a&amp;b&lt;c",
	} {
		got := Markup(mustParse(t, m))
		if got != m {
			t.Errorf("Markup(Parse(%q)) = %q", m, got)
		}
	}
}
