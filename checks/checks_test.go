package checks_test

import (
	"testing"

	"github.com/gregorio-project/gregotex/checks"
	"github.com/gregorio-project/gregotex/script"
)

func statement(body string) script.Statement {
	return script.Statement{Command: script.Command{Name: "check", Body: body}}
}

func TestMacro(t *testing.T) {
	tex := "" +
		"\\GreBeginScore{ab}{i}{g}{0}{0}{}{4}%\n" +
		"\\GreGlyph{\\GreCPPunctum}{g}{g}{0}%\n" +
		"\\GreEndOfGlyph{2}%\n" +
		"\\GreGlyph{\\GreCPPunctum}{h}{h}{0}%\n" +
		"\\GreNewLineWithSpace{0}{2}{0}{0}%\n" +
		"\\GreEndScore %\n"

	tests := []struct {
		body    string
		wantMsg bool
	}{
		{`GreBeginScore contains {4}%`, false},
		{`GreBeginScore contains {5}%`, true},
		{`GreGlyph == \GreGlyph{\GreCPPunctum}{g}{g}{0}%`, false},
		{`GreGlyph != \GreGlyph{\GreCPPunctum}{g}{g}{0}%`, true},
		{`GreGlyph ~ \{g\}\{0\}%$`, false},
		{`GreGlyph !~ Punctum`, true},
		{`GreGlyph count 2`, false},
		{`GreGlyph count 3`, true},
		{`GreNewLine count 0`, false},
		{`GreNewLineWithSpace count 1`, false},
		{`GreNewLine == anything`, true},
		{`GreEndScore !contains endinput`, false},
		{`GreGlyph ~ (`, true},
		{`GreGlyph === x`, true},
	}
	for _, tt := range tests {
		msg := checks.Macro(statement(tt.body), tex)
		if tt.wantMsg && msg == "" {
			t.Errorf("Macro(%q): expected a message, got none", tt.body)
		}
		if !tt.wantMsg && msg != "" {
			t.Errorf("Macro(%q): unexpected message: %s", tt.body, msg)
		}
	}
}

func TestMacroNoMatch(t *testing.T) {
	msg := checks.Macro(statement(`GreCustos contains {g}`), "\\GreEndScore %\n")
	want := `no line starts with \GreCustos`
	if msg != want {
		t.Errorf("got %q, want %q", msg, want)
	}
}

func TestLyric(t *testing.T) {
	markup := "<b><sc>Al</sc></b>le<i>lu</i>{i}a<v>\\hfil</v>"

	tests := []struct {
		body    string
		wantMsg bool
	}{
		{`i == lu`, false},
		{`i == la`, true},
		{`b>sc == Al`, false},
		{`b contains Al`, false},
		{`sc ~ ^A`, false},
		{`v == \hfil`, false},
		{`v count 1`, false},
		{`sc count 1`, false},
		{`b>.sc == Al`, false},
		{`i>sc count 0`, false},
		{`tt count 0`, false},
		{`tt count 1`, true},
		{`tt == x`, true},
		{`[oops == x`, true},
	}
	for _, tt := range tests {
		msg := checks.Lyric(statement(tt.body), markup)
		if tt.wantMsg && msg == "" {
			t.Errorf("Lyric(%q): expected a message, got none", tt.body)
		}
		if !tt.wantMsg && msg != "" {
			t.Errorf("Lyric(%q): unexpected message: %s", tt.body, msg)
		}
	}
}

func TestLyricNonHTMLTags(t *testing.T) {
	markup := "<c>Ky</c>ri<e>e</e><sp>ae</sp><i><sc>le</sc></i>"
	for _, body := range []string{
		`c == Ky`,
		`e == e`,
		`sp == ae`,
		`i>sc == le`,
		`sc count 1`,
	} {
		if msg := checks.Lyric(statement(body), markup); msg != "" {
			t.Errorf("Lyric(%q): %s", body, msg)
		}
	}
}

func TestLyricCountMessage(t *testing.T) {
	msg := checks.Lyric(statement(`i count 5`), "<i>a</i>b<i>c</i>")
	want := "i count = `2`, want `5`"
	if msg != want {
		t.Errorf("got %q, want %q", msg, want)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		op, got, want string
		fails, valid  bool
	}{
		{"==", "a", "a", false, true},
		{"==", "a", "b", true, true},
		{"!=", "a", "b", false, true},
		{"~", "abc", "^a.c$", false, true},
		{"!~", "abc", "^a", true, true},
		{"contains", "abc", "b", false, true},
		{"!contains", "abc", "b", true, true},
		{"==", "a", "", true, false},
		{"~", "a", "[", true, false},
		{"=~", "a", "a", true, false},
	}
	for _, tt := range tests {
		msg, valid := checks.Text("x", tt.op, tt.got, tt.want)
		if (msg != "") != tt.fails || valid != tt.valid {
			t.Errorf("Text(%q, %q, %q) = %q, %v", tt.op, tt.got, tt.want, msg, valid)
		}
	}
}
