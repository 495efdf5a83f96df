package script_test

import (
	"crypto/sha1"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"
	"testing"
	"testing/fstest"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kr.dev/diff"

	"github.com/gregorio-project/gregotex/checks"
	"github.com/gregorio-project/gregotex/lyric"
	"github.com/gregorio-project/gregotex/score"
	"github.com/gregorio-project/gregotex/script"
)

//go:embed testdata/*.lb
var testdata embed.FS

// TestExpand runs the record/check pairs of testdata. The body of a
// record is a script named after the record; the check holds the
// statements it expands to, or the error it stops with.
func TestExpand(t *testing.T) {
	files, err := fs.Glob(testdata, "testdata/*.lb")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	includes := make(fstest.MapFS)
	for _, file := range files {
		if strings.HasPrefix(path.Base(file), "_") {
			data, err := fs.ReadFile(testdata, file)
			require.NoError(t, err)
			includes[path.Base(file)] = &fstest.MapFile{Data: data}
		}
	}

	for _, file := range files {
		if strings.HasPrefix(path.Base(file), "_") {
			continue
		}
		t.Run(path.Base(file), func(t *testing.T) {
			pairs := 0
			for rec, check := range recordChecks(t, file) {
				name, src, _ := strings.Cut(rec.Body, "\n")
				name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
				fsys := fstest.MapFS{name: &fstest.MapFile{Data: []byte(src)}}
				maps.Copy(fsys, includes)

				var got strings.Builder
				for st, err := range script.NewExpander(name, fsys).All() {
					if err != nil {
						fmt.Fprintf(&got, "%v\n", err)
						break
					}
					switch {
					case st.Name == "":
					case rec.Name == "record!":
						fmt.Fprintf(&got, "%s> %s", st.Where(), st.String())
					default:
						got.WriteString(st.String())
					}
				}
				pairs++
				diff.Test(t, func(format string, args ...any) {
					t.Errorf("%s:\n"+format, append([]any{check.Where()}, args...)...)
				}, strings.TrimLeftFunc(got.String(), unicode.IsSpace), strings.TrimLeftFunc(check.Body, unicode.IsSpace))
			}
			if pairs == 0 {
				t.Fatalf("no record/check pairs in %s", file)
			}
		})
	}
}

// recordChecks returns the record statements of file paired with the
// check following each.
func recordChecks(t *testing.T, file string) func(yield func(rec, check script.Statement) bool) {
	return func(yield func(rec, check script.Statement) bool) {
		var rec *script.Statement
		for st, err := range script.NewExpander(file, testdata).All() {
			if err != nil {
				t.Fatal(err)
			}
			switch st.Name {
			case "":
			case "record", "record!":
				if rec != nil {
					t.Fatalf("%s: record without check", rec.Where())
				}
				rec = &st
			case "check":
				if rec == nil {
					t.Fatalf("%s: check without record", st.Where())
				}
				if !yield(*rec, st) {
					return
				}
				rec = nil
			default:
				t.Fatalf("%s: unexpected %q", st.Where(), st.Name)
			}
		}
		if rec != nil {
			t.Fatalf("%s: record without check", rec.Where())
		}
	}
}

const kyrie = `# Kyrie IX, first syllables
name Kyrie
header office-part Kyriale
mode 1 . Dorian
annotation IX
staff-lines 4
initial-style 1
clef c4

syllable begin <i>Ky</i>
translation Lord
glyph pes
note g
note h episema size=small-left
glyph flexus deminutus
note h mora
note g vepisema
gspace glyph
alt flat j
syllable middle ri
glyph one-note
note f oriscus
gverb \hfil
bar dominica 3 vepisema
syllable end e
flags euouae-start nlba-end
above-lines In festis
custos auto
eol ragged
clef c3 f1
verb \relax
nlba start
text-above Sol
space larger-nb
`

func buildKyrie(t *testing.T) *score.Score {
	t.Helper()
	s, err := script.Parse("kyrie.lb", []byte(kyrie), nil)
	require.NoError(t, err)
	return s
}

func TestBuildHeader(t *testing.T) {
	s := buildKyrie(t)
	assert.Equal(t, "Kyrie", s.Header("name"))
	assert.Equal(t, "Kyriale", s.Header("office-part"))
	assert.Equal(t, "1", s.Mode)
	assert.Equal(t, ".", s.ModeModifier)
	assert.Equal(t, "Dorian", s.ModeDifferentia)
	assert.Equal(t, []string{"IX"}, s.Annotations)
	assert.Equal(t, 4, s.StaffLines)
	assert.Equal(t, 1, s.InitialStyle)
	assert.Equal(t, "c4", s.Voices[0].InitialClef.String())
	assert.Equal(t, [score.DigestSize]byte(sha1.Sum([]byte(kyrie))), s.Digest)
	require.Len(t, s.Syllables, 3)
}

func TestBuildNotes(t *testing.T) {
	s := buildKyrie(t)
	syl := s.Syllables[0]
	assert.Equal(t, score.WordBeginning, syl.Position)
	assert.Equal(t, 10, syl.Line)
	if msg := checks.Lyric(statement("i == Ky"), lyric.Markup(syl.Text)); msg != "" {
		t.Error(msg)
	}
	assert.Equal(t, "Lord", score.Text(syl.Translation))

	es := syl.Voice(0)
	require.Len(t, es, 1)
	ne := es[0].(*score.NotesElement)
	require.Len(t, ne.Glyphs, 4)

	pes := ne.Glyphs[0].(*score.NoteGlyph)
	assert.Equal(t, score.GlyphPodatus, pes.Type)
	require.Len(t, pes.Notes, 2)
	assert.Equal(t, score.ShapePunctum, pes.Notes[0].Shape)
	high := pes.Notes[1]
	assert.Equal(t, score.EpisemaAuto, high.EpisemaAbove.Mark)
	assert.Equal(t, score.EpisemaAuto, high.EpisemaBelow.Mark)
	assert.Equal(t, score.SizeSmallLeft, high.EpisemaAbove.Size)

	flexa := ne.Glyphs[1].(*score.NoteGlyph)
	assert.Equal(t, score.GlyphFlexa, flexa.Type)
	assert.Equal(t, score.Deminutus, flexa.Liquescence)
	assert.True(t, flexa.Notes[0].Signs.Has(score.PunctumMora))
	assert.True(t, flexa.Notes[1].Signs.Has(score.VEpisema))

	assert.Equal(t, &score.SpaceGlyph{Kind: score.SpaceInterGlyph}, ne.Glyphs[2])
	alt := ne.Glyphs[3].(*score.AlterationGlyph)
	assert.Equal(t, score.Flat, alt.Kind)
	assert.Equal(t, "j", alt.Pitch.String())
}

func TestBuildElements(t *testing.T) {
	s := buildKyrie(t)

	ri := s.Syllables[1].Voice(0)
	require.Len(t, ri, 2)
	ne := ri[0].(*score.NotesElement)
	require.Len(t, ne.Glyphs, 2)
	assert.Equal(t, score.ShapeOriscusAscendens, ne.Glyphs[0].(*score.NoteGlyph).Notes[0].Shape)
	assert.Equal(t, &score.TexVerbGlyph{Text: `\hfil`}, ne.Glyphs[1])
	assert.Equal(t, &score.BarElement{Kind: score.BarDominica, Dominica: 3, Signs: score.VEpisema}, ri[1])

	e := s.Syllables[2]
	assert.True(t, e.EuouaeStart)
	assert.True(t, e.NoLineBreakEnd)
	assert.False(t, e.NoLineBreakStart)
	assert.Equal(t, "In festis", e.AboveLinesText)

	es := e.Voice(0)
	require.Len(t, es, 7)
	assert.Equal(t, &score.CustosElement{Auto: true}, es[0])
	assert.Equal(t, &score.EndOfLineElement{Ragged: true}, es[1])
	clef := es[2].(*score.ClefElement).Clef
	assert.Equal(t, "c3@f1", clef.String())
	assert.Equal(t, &score.TexVerbElement{Text: `\relax`}, es[3])
	assert.Equal(t, &score.NLBAElement{Start: true}, es[4])
	assert.Equal(t, &score.AboveLinesTextElement{Text: "Sol"}, es[5])
	assert.Equal(t, &score.SpaceElement{Kind: score.SpaceLargerNB}, es[6])
}

func TestBuildLeadingClef(t *testing.T) {
	s, err := script.Parse("a.lb", []byte("syllable none\nclef f3\nsyllable alone a\ncustos g\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "f3", s.Voices[0].InitialClef.String())
	require.Len(t, s.Syllables, 1, "the emptied first syllable is dropped")
	assert.Equal(t, &score.CustosElement{Pitch: 9}, s.Syllables[0].Voice(0)[0])
}

func TestBuildInclude(t *testing.T) {
	fsys := fstest.MapFS{
		"main.lb":   {Data: []byte("include neumes\nsyllable alone a\npes g h\n")},
		"neumes.lb": {Data: []byte("define pes a b\n\tglyph pes\n\tnote $a\n\tnote $b\n")},
	}
	s, err := script.Build("main.lb", fsys, nil)
	require.NoError(t, err)
	g := s.Syllables[0].Voice(0)[0].(*score.NotesElement).Glyphs[0].(*score.NoteGlyph)
	assert.Equal(t, score.GlyphPodatus, g.Type)
	assert.Len(t, g.Notes, 2)

	_, err = script.Parse("main.lb", fsys["main.lb"].Data, nil)
	assert.ErrorContains(t, err, "no file system")

	src := []byte("include neumes\nsyllable alone a\npes h g\n")
	s, err = script.ParseFS("edited.lb", src, fsys, nil)
	require.NoError(t, err)
	assert.Equal(t, [score.DigestSize]byte(sha1.Sum(src)), s.Digest)

	_, err = script.Build("missing.lb", fsys, nil)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"frobnicate\n", `x.lb:1: unknown command "frobnicate"`},
		{"note g\n", "x.lb:1: note outside a glyph"},
		{"syllable alone a\nnote g\n", "x.lb:2: note outside a glyph"},
		{"glyph pes\n", "x.lb:1: no syllable open"},
		{"bar maior\n", "x.lb:1: no syllable open"},
		{"syllable sometimes a\n", `x.lb:1: unknown syllable position "sometimes"`},
		{"syllable alone <q>a</q>\n", "unknown tag <q>"},
		{"syllable alone a\nglyph pes\nnote g sharp\n", `x.lb:3: unknown note modifier "sharp"`},
		{"syllable alone a\nglyph pes\nnote g mora duplex\n", "illegal sign combination"},
		{"syllable alone a\nglyph pes\nnote g punctum virga\n", `second shape "virga"`},
		{"syllable alone a\nglyph pes deminutus ascendens\n", "illegal liquescence combination"},
		{"syllable alone a\nglyph pes fuse=300\n", "x.lb:2: fuse:"},
		{"syllable alone a\nglyph wiggle\n", `unknown glyph type "wiggle"`},
		{"staff-lines 7\n", "x.lb:1: 7 out of range [2, 5]"},
		{"syllable alone a\nstaff-lines 3\n", "x.lb:2: must come before the first syllable"},
		{"clef g2\n", `invalid clef "g2"`},
		{"syllable alone a\nbar dominica\n", "missing number"},
		{"syllable alone a\nbar maior mora\n", `bar: unknown sign "mora"`},
		{"syllable alone a\nflags loud\n", `unknown syllable flag "loud"`},
		{"syllable alone a\nnlba maybe\n", "nlba: want start or end"},
		{"syllable alone a\nglyph pes\nnote z\n", "out of range"},
		{"define p\n\tnote g\nsyllable alone a\np\n", "x.lb:4: p@1: note outside a glyph"},
	}
	for _, tt := range tests {
		_, err := script.Parse("x.lb", []byte(tt.src), nil)
		if err == nil {
			t.Errorf("Parse(%q) succeeded; want error containing %q", tt.src, tt.want)
			continue
		}
		var se *script.Error
		if !errors.As(err, &se) {
			t.Errorf("Parse(%q) error %T is not a *script.Error", tt.src, err)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Parse(%q) error = %q; want it to contain %q", tt.src, err, tt.want)
		}
	}
}

func statement(body string) script.Statement {
	return script.Statement{Command: script.Command{Name: "lyric", Body: body}}
}
