package script

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
)

// Ext is the file name extension of score scripts.
const Ext = ".lb"

// Error is a problem with one statement of a script.
type Error struct {
	Statement
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Where(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Expander reads the statements of a script. It runs the define and
// include builtins itself and expands template calls, so that the
// statements it returns are plain commands.
type Expander struct {
	fsys  fs.FS
	defs  map[string]*template
	files []*source // open scripts, innermost last
	queue []Statement
	calls []Statement // template calls being expanded
	err   error       // sticky
}

type source struct {
	name string
	dec  *Decoder
	c    io.Closer
}

type template struct {
	def    Statement
	name   string
	params []string
	body   string
}

// NewExpander returns an expander reading the script name of fsys.
// Included scripts are read from fsys too.
func NewExpander(name string, fsys fs.FS) *Expander {
	e := &Expander{fsys: fsys, defs: make(map[string]*template)}
	f, err := fsys.Open(name)
	if err != nil {
		e.err = &Error{Statement: Statement{File: name}, Err: err}
		return e
	}
	e.files = []*source{{name: name, dec: NewDecoder(f), c: f}}
	return e
}

// newReaderExpander is NewExpander for a script already in memory. fsys
// may be nil, in which case include fails.
func newReaderExpander(name string, r io.Reader, fsys fs.FS) *Expander {
	return &Expander{
		fsys:  fsys,
		defs:  make(map[string]*template),
		files: []*source{{name: name, dec: NewDecoder(r)}},
	}
}

// Next returns the next statement. Blank lines are returned as
// statements with an empty name. At the end of the script Next returns
// io.EOF, and after any error it keeps returning the same error.
func (e *Expander) Next() (Statement, error) {
	for e.err == nil {
		if len(e.queue) > 0 {
			st := e.queue[0]
			e.queue = e.queue[1:]
			return st, nil
		}
		if len(e.files) == 0 {
			e.err = io.EOF
			break
		}
		src := e.files[len(e.files)-1]
		c, err := src.dec.Decode()
		if err == io.EOF {
			e.pop()
			continue
		}
		if err != nil {
			var se *SyntaxError
			if errors.As(err, &se) {
				err = &Error{
					Statement: Statement{Command: Command{Line: se.Line}, File: src.name},
					Err:       errors.New(se.Msg),
				}
			}
			e.err = err
			break
		}
		e.err = e.run(Statement{Command: c, File: src.name})
	}
	return Statement{}, e.err
}

// All returns an iterator over the remaining statements. Iteration
// stops after the first error.
func (e *Expander) All() func(yield func(Statement, error) bool) {
	return func(yield func(Statement, error) bool) {
		for {
			st, err := e.Next()
			if err == io.EOF {
				return
			}
			if !yield(st, err) || err != nil {
				return
			}
		}
	}
}

func (e *Expander) pop() {
	src := e.files[len(e.files)-1]
	if src.c != nil {
		src.c.Close()
	}
	e.files = e.files[:len(e.files)-1]
}

// run handles one statement, queueing what it expands to.
func (e *Expander) run(st Statement) error {
	st.Stack = slices.Clone(e.calls)
	switch st.Name {
	case "define":
		if len(e.calls) > 0 {
			return &Error{Statement: st, Err: fmt.Errorf("define inside template %q", e.calls[len(e.calls)-1].Name)}
		}
		return e.define(st)
	case "include":
		if len(e.calls) > 0 {
			return &Error{Statement: st, Err: fmt.Errorf("include inside template %q", e.calls[len(e.calls)-1].Name)}
		}
		return e.include(st)
	}
	t := e.defs[st.Name]
	if st.Name == "" || t == nil || t.body == "" {
		e.queue = append(e.queue, st)
		return nil
	}
	return e.expand(t, st)
}

func (e *Expander) define(st Statement) error {
	head, body, _ := strings.Cut(st.Body, "\n")
	name, rest := cutField(head)
	if name == "" {
		return &Error{Statement: st, Err: errors.New("define: missing name")}
	}
	if prev, ok := e.defs[name]; ok {
		return &Error{Statement: st, Err: fmt.Errorf("template %q redefined; previous define at %s", name, prev.def.Where())}
	}
	e.defs[name] = &template{def: st, name: name, params: strings.Fields(rest), body: body}
	return nil
}

func (e *Expander) include(st Statement) error {
	name := st.Args(1).At(0)
	switch {
	case name == "":
		return &Error{Statement: st, Err: errors.New("include: missing file name")}
	case strings.Contains(name, "/"):
		return &Error{Statement: st, Err: fmt.Errorf("include: path %q contains a slash", name)}
	case e.fsys == nil:
		return &Error{Statement: st, Err: fmt.Errorf("include %s: no file system", name)}
	}
	if !strings.HasSuffix(name, Ext) {
		name += Ext
	}
	for _, src := range e.files {
		if src.name == name {
			var chain []string
			for _, src := range e.files {
				chain = append(chain, src.name)
			}
			chain = append(chain, name)
			return &Error{Statement: st, Err: fmt.Errorf("include cycle: %s", strings.Join(chain, " -> "))}
		}
	}
	f, err := e.fsys.Open(name)
	if err != nil {
		return &Error{Statement: st, Err: err}
	}
	e.files = append(e.files, &source{name: name, dec: NewDecoder(f), c: f})
	return nil
}

// expand runs the body of t for the call st.
func (e *Expander) expand(t *template, call Statement) error {
	for _, c := range e.calls {
		if c.Name == call.Name {
			var b strings.Builder
			fmt.Fprintf(&b, "recursive template %q:", call.Name)
			for _, c := range append(e.calls, call) {
				fmt.Fprintf(&b, "\n    %s> %s", c.Where(), strings.TrimSuffix(c.String(), "\n"))
			}
			return &Error{Statement: call, Err: errors.New(b.String())}
		}
	}
	args := call.Args(len(t.params))
	if len(args) != len(t.params) {
		return &Error{Statement: call, Err: fmt.Errorf("template %q takes %d arguments, got %d", t.name, len(t.params), len(args))}
	}

	e.calls = append(e.calls, call)
	defer func() { e.calls = e.calls[:len(e.calls)-1] }()

	var unknown string
	subst := func(name string) string {
		if i := slices.Index(t.params, name); i >= 0 {
			return args.At(i)
		}
		if unknown == "" {
			unknown = name
		}
		return ""
	}
	dec := NewDecoder(strings.NewReader(t.body))
	for {
		c, err := dec.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var se *SyntaxError
			if errors.As(err, &se) {
				return &Error{Statement: t.def, Err: fmt.Errorf("template %q line %d: %s", t.name, se.Line, se.Msg)}
			}
			return err
		}
		if c.Name == "" {
			continue
		}
		c.Name = os.Expand(c.Name, subst)
		c.Body = os.Expand(c.Body, subst)
		if unknown != "" {
			return &Error{Statement: t.def, Err: fmt.Errorf("unknown parameter $%s in template %q", unknown, t.name)}
		}
		if err := e.run(Statement{Command: c, File: t.def.File}); err != nil {
			return err
		}
	}
}
