package gregoriotex_test

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"testing"
	"unicode"

	"kr.dev/diff"

	"github.com/gregorio-project/gregotex/checks"
	"github.com/gregorio-project/gregotex/gregoriotex"
	"github.com/gregorio-project/gregotex/lyric"
	"github.com/gregorio-project/gregotex/message"
	"github.com/gregorio-project/gregotex/score"
	"github.com/gregorio-project/gregotex/script"
)

//go:embed testdata/*.lb
var testdata embed.FS

// run is the result of writing one recorded score.
type run struct {
	s   *score.Score
	tex string
	log string
	err error
}

// TestGolden runs the scores recorded in testdata. A record statement
// holds a score script, named by the rest of its first line. The
// statements after it check the result:
//
//	check                 the whole TeX output
//	macro name op want    the first line starting with \name (see checks.Macro)
//	lyric n sel op want   the markup of syllable n (see checks.Lyric)
//	log op want           the diagnostics written at warning level and above
//	error op want         the error of building or writing the score
//
// The digest of every score is replaced by ab00...00 so that outputs do
// not depend on the bytes of the script.
func TestGolden(t *testing.T) {
	files, err := fs.Glob(testdata, "testdata/*.lb")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no testdata")
	}
	for _, file := range files {
		t.Run(path.Base(file), func(t *testing.T) {
			var cur *run
			for st, err := range script.NewExpander(file, testdata).All() {
				if err != nil {
					t.Fatal(err)
				}
				if st.Name == "" {
					continue
				}
				if st.Name == "record" {
					cur = record(st)
					continue
				}
				if cur == nil {
					t.Fatalf("%s: %s before any record", st.Where(), st.Name)
				}
				if msg := verify(t, st, cur); msg != "" {
					t.Errorf("%s: %s", st.Where(), msg)
				}
			}
		})
	}
}

func record(st script.Statement) *run {
	name, src, _ := strings.Cut(st.Body, "\n")
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_") + script.Ext

	r := new(run)
	var logs, out bytes.Buffer
	log := message.New(&logs, slog.LevelWarn)
	r.s, r.err = script.Parse(name, []byte(src), log)
	if r.err == nil {
		r.s.Digest = [score.DigestSize]byte{0xab}
		r.err = gregoriotex.Write(&out, r.s, &gregoriotex.Options{Logger: log})
	}
	r.tex, r.log = out.String(), logs.String()
	return r
}

func verify(t *testing.T, st script.Statement, r *run) string {
	if r.err != nil && st.Name != "error" {
		return "unexpected error: " + r.err.Error()
	}
	switch st.Name {
	case "check":
		diff.Test(t, func(format string, args ...any) {
			t.Errorf("%s:\n"+format, append([]any{st.Where()}, args...)...)
		}, r.tex, strings.TrimLeftFunc(st.Body, unicode.IsSpace))
		return ""
	case "macro":
		return checks.Macro(st, r.tex)
	case "lyric":
		n, rest := script.ParseArgs2(st.Body)
		i, err := strconv.Atoi(n)
		if err != nil || i < 0 || i >= len(r.s.Syllables) {
			return "bad syllable index " + strconv.Quote(n)
		}
		st.Body = rest
		return checks.Lyric(st, lyric.Markup(r.s.Syllables[i].Text))
	case "log":
		op, want := script.ParseArgs2(st.Body)
		msg, _ := checks.Text("log", op, r.log, want)
		return msg
	case "error":
		if r.err == nil {
			return "no error"
		}
		op, want := script.ParseArgs2(st.Body)
		msg, _ := checks.Text("error", op, r.err.Error(), want)
		return msg
	}
	return "unknown check " + strconv.Quote(st.Name)
}
