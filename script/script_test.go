package script

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
)

func FuzzDecode(f *testing.F) {
	f.Add("glyph pes\nnote g\n")
	f.Add("# comment\nsyllable begin Ky\n\n")
	f.Add("verb\n\t\\hfil\n\t\\break\n")
	f.Add(" bad\n")
	f.Fuzz(func(t *testing.T, input string) {
		seen := make(map[int]bool)
		dec := NewDecoder(strings.NewReader(input))
		for {
			c, err := dec.Decode()
			if err != nil {
				break
			}
			if c.Line <= 0 {
				t.Errorf("line %d <= 0", c.Line)
			}
			if seen[c.Line] {
				t.Errorf("line %d seen twice", c.Line)
			}
			seen[c.Line] = true
		}
	})
}

func TestCutField(t *testing.T) {
	tests := []struct {
		in, field, rest string
	}{
		{"pes deminutus", "pes", "deminutus"},
		{"pes\tdeminutus", "pes", "deminutus"},
		{"  c4   f3", "c4", "f3"},
		{"g", "g", ""},
		{"", "", ""},
		{" \t\n ", "", ""},
		{"verb a\nb\n", "verb", "a\nb\n"},
		{"end   ", "end", ""},
		{"a b", "a", "b"},
		{"\u200b", "\u200b", ""},
	}
	for _, tt := range tests {
		field, rest := cutField(tt.in)
		if field != tt.field || rest != tt.rest {
			t.Errorf("cutField(%q) = %q, %q; want %q, %q", tt.in, field, rest, tt.field, tt.rest)
		}
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		n    int
		s    string
		want Args
	}{
		{-1, "", nil},
		{0, "a b", nil},
		{1, "", nil},
		{1, "\n", nil},
		{2, "a \n", Args{"a"}},
		{-1, "a b", Args{"a", "b"}},
		{1, "a b", Args{"a b"}},
		{2, "a b c", Args{"a", "b c"}},
		{3, "a b", Args{"a", "b"}},
		{2, "a\n\tb", Args{"a", "b"}},
		{3, "a b\t\t", Args{"a", "b"}},
	}
	for _, tt := range tests {
		if got := ParseArgs(tt.s, tt.n); !slices.Equal(got, tt.want) {
			t.Errorf("ParseArgs(%q, %d) = %#v; want %#v", tt.s, tt.n, got, tt.want)
		}
	}
	if got := (Args{"x\n"}).At(0); got != "x" {
		t.Errorf("At(0) = %q", got)
	}
	if got := (Args{}).At(3); got != "" {
		t.Errorf("At(3) = %q", got)
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"note", "g episema\n", "note g episema\n"},
		{"note", "\tg", "note g\n"},
		{"verb", "\n\\hfil\n", "verb\n\\hfil\n"},
		{"eol", "", "eol\n"},
		{"eol", "\n", "eol\n"},
		{"", "x", " x\n"},
	}
	for _, tt := range tests {
		if got := (Command{Name: tt.name, Body: tt.body}).String(); got != tt.want {
			t.Errorf("Command{%q, %q}.String() = %q; want %q", tt.name, tt.body, got, tt.want)
		}
	}
}

func decodeAll(t *testing.T, input string) []string {
	t.Helper()
	var got []string
	dec := NewDecoder(strings.NewReader(input))
	for {
		c, err := dec.Decode()
		if err == io.EOF {
			return got
		}
		if err != nil {
			return append(got, "error: "+err.Error())
		}
		got = append(got, fmt.Sprintf("%d %q %q %q", c.Line, c.Comment, c.Name, c.Body))
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "commands",
			input: "clef c4\nsyllable begin Ky\n",
			want: []string{
				`1 "" "clef" "c4\n"`,
				`2 "" "syllable" "begin Ky\n"`,
			},
		},
		{
			name:  "comments",
			input: "# Kyrie\n# IX\nname Kyrie\n\n# tail\n",
			want: []string{
				`3 "# Kyrie\n# IX\n" "name" "Kyrie\n"`,
				`4 "" "" ""`,
				`5 "# tail\n" "" ""`,
			},
		},
		{
			name:  "continuation",
			input: "verb\n\t\\hfil\n\t\\break\neol\n",
			want: []string{
				`1 "" "verb" "\n\\hfil\n\\break\n"`,
				`4 "" "eol" "\n"`,
			},
		},
		{
			name:  "no final newline",
			input: "bar maior",
			want:  []string{`1 "" "bar" "maior"`},
		},
		{
			name:  "crlf",
			input: "clef c4\r\n\r\neol\r\n",
			want: []string{
				`1 "" "clef" "c4\n"`,
				`2 "" "" ""`,
				`3 "" "eol" "\n"`,
			},
		},
		{
			name:  "leading space",
			input: "eol\n  note g\neol\n",
			want: []string{
				`1 "" "eol" "\n"`,
				`error: 2: unexpected whitespace at start of line`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAll(t, tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got:\n\t%s\nwant:\n\t%s", strings.Join(got, "\n\t"), strings.Join(tt.want, "\n\t"))
			}
		})
	}
}

func TestDecodeSticky(t *testing.T) {
	dec := NewDecoder(strings.NewReader(" x\ny\n"))
	_, err1 := dec.Decode()
	_, err2 := dec.Decode()
	var se *SyntaxError
	if !errors.As(err1, &se) || err1 != err2 {
		t.Fatalf("errors = %v, %v; want the same *SyntaxError twice", err1, err2)
	}
}

func expandAll(e *Expander) ([]string, error) {
	var got []string
	for st, err := range e.All() {
		if err != nil {
			return got, err
		}
		if st.Name != "" {
			got = append(got, st.String())
		}
	}
	return got, nil
}

func TestExpandInclude(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		fsys := fstest.MapFS{
			"main.lb":    {Data: []byte("include common\nsyllable end a\n")},
			"common.lb":  {Data: []byte("include pitches.lb\nclef c4\n")},
			"pitches.lb": {Data: []byte("define punctum p\n\tglyph one-note\n\tnote $p\n")},
		}
		got, err := expandAll(NewExpander("main.lb", fsys))
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"clef c4\n", "syllable end a\n"}
		if !slices.Equal(got, want) {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("missing", func(t *testing.T) {
		fsys := fstest.MapFS{"main.lb": {Data: []byte("include missing\n")}}
		_, err := expandAll(NewExpander("main.lb", fsys))
		var pe *fs.PathError
		if !errors.As(err, &pe) || pe.Path != "missing.lb" {
			t.Fatalf("err = %v; want a PathError for missing.lb", err)
		}
		var se *Error
		if !errors.As(err, &se) || se.Line != 1 || se.File != "main.lb" {
			t.Fatalf("err = %v; want an *Error at main.lb:1", err)
		}
	})

	t.Run("cycle", func(t *testing.T) {
		fsys := fstest.MapFS{
			"main.lb":  {Data: []byte("include other\n")},
			"other.lb": {Data: []byte("\ninclude main\n")},
		}
		_, err := expandAll(NewExpander("main.lb", fsys))
		want := "other.lb:2: include cycle: main.lb -> other.lb -> main.lb"
		if err == nil || err.Error() != want {
			t.Fatalf("err = %v; want %q", err, want)
		}
	})

	t.Run("slash", func(t *testing.T) {
		fsys := fstest.MapFS{"main.lb": {Data: []byte("include lib/x\n")}}
		if _, err := expandAll(NewExpander("main.lb", fsys)); err == nil {
			t.Fatal("include with a slash succeeded")
		}
	})

	t.Run("no file system", func(t *testing.T) {
		e := newReaderExpander("mem.lb", strings.NewReader("include x\n"), nil)
		if _, err := expandAll(e); err == nil || !strings.Contains(err.Error(), "no file system") {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{
			"arity",
			"define pes a b\n\tglyph pes\nsyllable begin a\npes g\n",
			`main.lb:4: template "pes" takes 2 arguments, got 1`,
		},
		{
			"no arguments",
			"define punctum p\n\tglyph one-note\n\tnote $p\nsyllable alone a\npunctum\n",
			`main.lb:5: template "punctum" takes 1 arguments, got 0`,
		},
		{
			"redefined",
			"define x\n\teol\ndefine x\n\teol\n",
			`main.lb:3: template "x" redefined; previous define at main.lb:1`,
		},
		{
			"unknown parameter",
			"define x a\n\tnote $b\nx g\n",
			`main.lb:1: unknown parameter $b in template "x"`,
		},
		{
			"nested define",
			"define x\n\tdefine y\nx\n",
			`main.lb:3: x@1: define inside template "x"`,
		},
		{
			"recursion",
			"define x\n\tx\nx\n",
			"main.lb:3: x@1: recursive template \"x\":\n    main.lb:3> x\n    main.lb:3: x@1> x",
		},
		{
			"missing name",
			"define\n",
			"main.lb:1: define: missing name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"main.lb": {Data: []byte(tt.src)}}
			_, err := expandAll(NewExpander("main.lb", fsys))
			if err == nil || err.Error() != tt.want {
				t.Fatalf("err = %v\nwant %s", err, tt.want)
			}
		})
	}
}
