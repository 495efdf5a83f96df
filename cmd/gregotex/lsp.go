package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/spf13/cobra"

	"github.com/gregorio-project/gregotex/gregoriotex"
	"github.com/gregorio-project/gregotex/script"
)

// JSON-RPC error codes
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// Diagnostic severities
const (
	severityError   = 1
	severityWarning = 2
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server for score scripts on standard input and output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newServer(cmd.InOrStdin(), cmd.OutOrStdout())
			err := s.run()
			var e exitError
			if errors.As(err, &e) && e.code == 0 {
				return nil
			}
			return err
		},
	}
}

type server struct {
	r        *bufio.Reader
	w        *bufio.Writer
	docs     map[string]*document
	fsys     fs.FS // for tests; nil reads includes from the directory of each document
	shutdown bool
}

type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

func newServer(r io.Reader, w io.Writer) *server {
	return &server{
		r:    bufio.NewReader(r),
		w:    bufio.NewWriter(w),
		docs: make(map[string]*document),
	}
}

func (s *server) run() error {
	for {
		data, err := s.readMessage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		var msg request
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := s.sendError(nil, codeParseError, err.Error()); err != nil {
				return err
			}
			continue
		}
		if err := s.dispatch(&msg); err != nil {
			return err
		}
	}
}

func (s *server) dispatch(msg *request) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized", "$/cancelRequest", "workspace/didChangeConfiguration", "textDocument/didSave":
		return nil
	case "shutdown":
		s.shutdown = true
		return s.reply(msg.ID, nil)
	case "exit":
		if s.shutdown {
			return exitError{0}
		}
		return exitError{1}
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/references":
		return s.handleReferences(msg)
	case "textDocument/semanticTokens/full":
		return s.handleSemanticTokens(msg)
	}
	if msg.ID != nil {
		return s.sendError(msg.ID, codeMethodNotFound, fmt.Sprintf("unsupported method %q", msg.Method))
	}
	return nil
}

// Token types, in the order of the legend sent on initialize.
const (
	tokComment = iota
	tokKeyword
	tokFunction
	tokMacro
	tokParameter
	tokVariable
)

func (s *server) handleInitialize(msg *request) error {
	const result = `{
		"capabilities": {
			"textDocumentSync": {"openClose": true, "change": 1},
			"hoverProvider": true,
			"referencesProvider": true,
			"definitionProvider": true,
			"semanticTokensProvider": {
				"legend": {"tokenTypes": ["comment", "keyword", "function", "macro", "parameter", "variable"], "tokenModifiers": []},
				"full": true
			}
		},
		"serverInfo": {"name": "gregotex"}
	}`
	return s.replyRaw(msg.ID, json.RawMessage(result))
}

func (s *server) handleDidOpen(msg *request) error {
	var p struct {
		TextDocument struct {
			URI  string `json:"uri"`
			Text string `json:"text"`
		} `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return nil
	}
	doc := newDocument(p.TextDocument.URI, p.TextDocument.Text, s.fsys)
	s.docs[p.TextDocument.URI] = doc
	return s.publishDiagnostics(doc)
}

func (s *server) handleDidChange(msg *request) error {
	var p struct {
		TextDocument   textDocumentIdentifier `json:"textDocument"`
		ContentChanges []struct {
			Text string `json:"text"`
		} `json:"contentChanges"`
	}
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return nil
	}
	doc := s.docs[p.TextDocument.URI]
	if doc == nil || len(p.ContentChanges) == 0 {
		return nil
	}
	doc.setText(p.ContentChanges[len(p.ContentChanges)-1].Text)
	return s.publishDiagnostics(doc)
}

func (s *server) handleDidClose(msg *request) error {
	var p struct {
		TextDocument textDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return nil
	}
	delete(s.docs, p.TextDocument.URI)
	// Clear the diagnostics of the closed script.
	return s.notify("textDocument/publishDiagnostics", publishParams{URI: p.TextDocument.URI, Diagnostics: []diagnostic{}})
}

// positionParams reads the parameters of a request about a position in
// an open document. It returns a nil document if there is none.
func (s *server) positionParams(msg *request, p any) (*document, error) {
	if err := json.Unmarshal(msg.Params, p); err != nil {
		return nil, err
	}
	var id struct {
		TextDocument textDocumentIdentifier `json:"textDocument"`
	}
	json.Unmarshal(msg.Params, &id)
	return s.docs[id.TextDocument.URI], nil
}

func (s *server) handleHover(msg *request) error {
	if msg.ID == nil {
		return nil
	}
	var p struct {
		Position position `json:"position"`
	}
	doc, err := s.positionParams(msg, &p)
	if err != nil {
		return s.sendError(msg.ID, codeInvalidParams, err.Error())
	}
	if doc == nil {
		return s.reply(msg.ID, nil)
	}
	text, rng, ok := doc.hover(p.Position.Line, p.Position.Character)
	if !ok {
		return s.reply(msg.ID, nil)
	}
	return s.reply(msg.ID, struct {
		Contents markupContent `json:"contents"`
		Range    lspRange      `json:"range"`
	}{
		Contents: markupContent{Kind: "markdown", Value: text},
		Range:    rng.toLSP(),
	})
}

func (s *server) handleDefinition(msg *request) error {
	if msg.ID == nil {
		return nil
	}
	var p struct {
		Position position `json:"position"`
	}
	doc, err := s.positionParams(msg, &p)
	if err != nil {
		return s.sendError(msg.ID, codeInvalidParams, err.Error())
	}
	if doc == nil {
		return s.reply(msg.ID, nil)
	}
	if name, ok := doc.includeAt(p.Position.Line, p.Position.Character); ok {
		return s.reply(msg.ID, location{URI: doc.siblingURI(name), Range: span{}.toLSP()})
	}
	name, _, ok := doc.symbolAt(p.Position.Line, p.Position.Character)
	if !ok {
		return s.reply(msg.ID, nil)
	}
	def, ok := doc.defs[name]
	if !ok {
		return s.reply(msg.ID, nil)
	}
	start := utf16Len("define ")
	return s.reply(msg.ID, location{
		URI:   def.uri,
		Range: span{def.line, start, def.line, start + utf16Len(name)}.toLSP(),
	})
}

func (s *server) handleReferences(msg *request) error {
	if msg.ID == nil {
		return nil
	}
	var p struct {
		Position position `json:"position"`
		Context  struct {
			IncludeDeclaration bool `json:"includeDeclaration"`
		} `json:"context"`
	}
	doc, err := s.positionParams(msg, &p)
	if err != nil {
		return s.sendError(msg.ID, codeInvalidParams, err.Error())
	}
	if doc == nil {
		return s.reply(msg.ID, nil)
	}
	name, _, ok := doc.symbolAt(p.Position.Line, p.Position.Character)
	if !ok {
		return s.reply(msg.ID, nil)
	}
	var locs []location
	for _, ref := range doc.references(name, p.Context.IncludeDeclaration) {
		locs = append(locs, location{URI: doc.uri, Range: ref.toLSP()})
	}
	return s.reply(msg.ID, locs)
}

func (s *server) handleSemanticTokens(msg *request) error {
	if msg.ID == nil {
		return nil
	}
	var p struct{}
	doc, err := s.positionParams(msg, &p)
	if err != nil {
		return s.sendError(msg.ID, codeInvalidParams, err.Error())
	}
	data := []uint32{}
	if doc != nil {
		data = append(data, doc.semanticTokens()...)
	}
	return s.reply(msg.ID, struct {
		Data []uint32 `json:"data"`
	}{Data: data})
}

func (s *server) publishDiagnostics(doc *document) error {
	diags := make([]diagnostic, len(doc.problems))
	for i, pr := range doc.problems {
		end := 0
		if pr.line >= 0 && pr.line < len(doc.lines) {
			end = utf16Len(doc.lines[pr.line])
		}
		diags[i] = diagnostic{
			Range:    span{pr.line, 0, pr.line, end}.toLSP(),
			Severity: pr.severity,
			Source:   "gregotex",
			Message:  pr.msg,
		}
	}
	return s.notify("textDocument/publishDiagnostics", publishParams{URI: doc.uri, Diagnostics: diags})
}

// Protocol I/O

func (s *server) readMessage() ([]byte, error) {
	var n int
	for {
		line, err := s.r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if k, v, ok := strings.Cut(line, ":"); ok && strings.EqualFold(strings.TrimSpace(k), "content-length") {
			n, _ = strconv.Atoi(strings.TrimSpace(v))
		}
	}
	if n <= 0 {
		return nil, errors.New("missing Content-Length")
	}
	data := make([]byte, n)
	_, err := io.ReadFull(s.r, data)
	return data, err
}

func (s *server) writeMessage(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.w, "Content-Length: %d\r\n\r\n", len(data))
	s.w.Write(data)
	return s.w.Flush()
}

func (s *server) reply(id json.RawMessage, result any) error {
	return s.writeMessage(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  any             `json:"result"`
	}{"2.0", id, result})
}

func (s *server) replyRaw(id json.RawMessage, result json.RawMessage) error {
	return s.reply(id, result)
}

func (s *server) sendError(id json.RawMessage, code int, message string) error {
	type rpcError struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	return s.writeMessage(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Error   rpcError        `json:"error"`
	}{"2.0", id, rpcError{code, message}})
}

func (s *server) notify(method string, params any) error {
	return s.writeMessage(struct {
		JSONRPC string `json:"jsonrpc"`
		Method  string `json:"method"`
		Params  any    `json:"params,omitempty"`
	}{"2.0", method, params})
}

// LSP Protocol Types

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type textDocumentIdentifier struct {
	URI string `json:"uri"`
}

type position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type lspRange struct {
	Start position `json:"start"`
	End   position `json:"end"`
}

type location struct {
	URI   string   `json:"uri"`
	Range lspRange `json:"range"`
}

type markupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type diagnostic struct {
	Range    lspRange `json:"range"`
	Severity int      `json:"severity"`
	Source   string   `json:"source,omitempty"`
	Message  string   `json:"message"`
}

type publishParams struct {
	URI         string       `json:"uri"`
	Diagnostics []diagnostic `json:"diagnostics"`
}

// Document

// document is an open script. Its problems are found by building the
// score and writing it out, as gregotex would.
type document struct {
	uri      string
	file     string // path of the script
	text     string
	lines    []string
	cmds     []script.Command // commands of the script itself, not of its includes
	defs     map[string]definition
	problems []problem
	fsys     fs.FS // directory of file
}

type definition struct {
	uri    string
	doc    string
	params []string
	line   int // 0-indexed
}

type problem struct {
	line     int // 0-indexed
	severity int
	msg      string
}

type span struct{ startLine, startChar, endLine, endChar int }

func (s span) toLSP() lspRange {
	return lspRange{
		Start: position{Line: s.startLine, Character: s.startChar},
		End:   position{Line: s.endLine, Character: s.endChar},
	}
}

// newDocument returns the document at uri holding text. Includes are
// read from fsys, or from the directory of the document if fsys is nil.
func newDocument(uri, text string, fsys fs.FS) *document {
	file := uri
	if u, err := url.Parse(uri); err == nil && u.Scheme == "file" && u.Path != "" {
		file = u.Path
	}
	if fsys == nil {
		fsys = os.DirFS(path.Dir(file))
	}
	d := &document{uri: uri, file: file, defs: make(map[string]definition), fsys: fsys}
	d.setText(text)
	return d
}

func (d *document) setText(text string) {
	d.text = text
	d.lines = strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	d.cmds = d.cmds[:0]
	d.problems = d.problems[:0]
	clear(d.defs)

	name := path.Base(d.file)
	d.collect(d.uri, text, map[string]bool{name: true})
	d.check(name)
}

// siblingURI returns the URI of the script name next to d, as include
// finds it.
func (d *document) siblingURI(name string) string {
	if !strings.HasSuffix(name, script.Ext) {
		name += script.Ext
	}
	u := url.URL{Scheme: "file", Path: path.Join(path.Dir(d.file), name)}
	return u.String()
}

// collect records the templates defined by text and by the scripts it
// includes. Problems are left to check.
func (d *document) collect(uri, text string, seen map[string]bool) {
	dec := script.NewDecoder(strings.NewReader(text))
	for {
		c, err := dec.Decode()
		if err != nil {
			return
		}
		if uri == d.uri {
			d.cmds = append(d.cmds, c)
		}
		switch c.Name {
		case "define":
			head, _, _ := strings.Cut(c.Body, "\n")
			fields := strings.Fields(head)
			if len(fields) == 0 {
				break
			}
			if _, ok := d.defs[fields[0]]; !ok {
				d.defs[fields[0]] = definition{
					uri:    uri,
					doc:    formatComment(c.Comment),
					params: fields[1:],
					line:   c.Line - 1,
				}
			}
		case "include":
			name := c.Args(1).At(0)
			if name == "" || strings.Contains(name, "/") {
				break
			}
			if !strings.HasSuffix(name, script.Ext) {
				name += script.Ext
			}
			if seen[name] {
				break
			}
			seen[name] = true
			if data, err := fs.ReadFile(d.fsys, name); err == nil {
				d.collect(d.siblingURI(name), string(data), seen)
			}
		}
	}
}

// check builds and writes the score of d, recording what goes wrong.
func (d *document) check(name string) {
	log := slog.New(&collector{d: d})
	s, err := script.ParseFS(name, []byte(d.text), d.fsys, log)
	if err != nil {
		d.report(name, err)
		return
	}
	if err := gregoriotex.Write(io.Discard, s, &gregoriotex.Options{Logger: log}); err != nil {
		d.problems = append(d.problems, problem{0, severityError, err.Error()})
	}
}

// report records a build error. An error inside a template is shown at
// the call; one inside an included script at the first line.
func (d *document) report(name string, err error) {
	var se *script.Error
	if !errors.As(err, &se) {
		d.problems = append(d.problems, problem{0, severityError, err.Error()})
		return
	}
	at := se.Statement
	if len(se.Stack) > 0 {
		at = se.Stack[0]
	}
	if at.File != name || at.Line == 0 {
		d.problems = append(d.problems, problem{0, severityError, se.Error()})
		return
	}
	msg := strings.TrimPrefix(se.Error(), fmt.Sprintf("%s:%d: ", name, at.Line))
	d.problems = append(d.problems, problem{at.Line - 1, severityError, msg})
}

// collector is a log handler turning the warnings of a build into
// problems of d, at the line of their "line" attribute.
type collector struct {
	d    *document
	line int
}

func (c *collector) Enabled(_ context.Context, l slog.Level) bool { return l >= slog.LevelWarn }

func (c *collector) Handle(_ context.Context, r slog.Record) error {
	line := c.line
	var b strings.Builder
	b.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "line" {
			line = int(a.Value.Int64())
			return true
		}
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	sev := severityWarning
	if r.Level >= slog.LevelError {
		sev = severityError
	}
	c.d.problems = append(c.d.problems, problem{max(line-1, 0), sev, b.String()})
	return nil
}

func (c *collector) WithAttrs(as []slog.Attr) slog.Handler {
	c2 := *c
	for _, a := range as {
		if a.Key == "line" {
			c2.line = int(a.Value.Int64())
		}
	}
	return &c2
}

func (c *collector) WithGroup(string) slog.Handler { return c }

func (d *document) symbolAt(line, char int) (string, span, bool) {
	for _, c := range d.cmds {
		if c.Line-1 != line || c.Name == "" {
			continue
		}
		n := utf16Len(c.Name)
		if char < n {
			return c.Name, span{line, 0, line, n}, true
		}
		if c.Name == "define" {
			name, _ := script.ParseArgs2(c.Body)
			start := n + 1
			if char >= start && char < start+utf16Len(name) {
				return name, span{line, start, line, start + utf16Len(name)}, true
			}
		}
	}
	return "", span{}, false
}

// hover returns the documentation of the template or command at a
// position.
func (d *document) hover(line, char int) (string, span, bool) {
	name, rng, ok := d.symbolAt(line, char)
	if !ok {
		return "", span{}, false
	}
	if def, ok := d.defs[name]; ok {
		text := fmt.Sprintf("```\n%s\n```", strings.Join(append([]string{name}, def.params...), " "))
		if def.doc != "" {
			text += "\n\n" + def.doc
		}
		return text, rng, true
	}
	if doc, ok := commandDocs[name]; ok {
		return doc, rng, true
	}
	return "", span{}, false
}

// includeAt returns the script named by an include command at a position.
func (d *document) includeAt(line, char int) (string, bool) {
	for _, c := range d.cmds {
		if c.Line-1 != line || c.Name != "include" {
			continue
		}
		start := utf16Len("include ")
		name := c.Args(1).At(0)
		if char >= start && char < start+utf16Len(name) {
			return name, true
		}
	}
	return "", false
}

func (d *document) references(name string, includeDecl bool) []span {
	var refs []span
	for _, c := range d.cmds {
		line := c.Line - 1
		if c.Name == name {
			refs = append(refs, span{line, 0, line, utf16Len(name)})
			continue
		}
		if def, _ := script.ParseArgs2(c.Body); includeDecl && c.Name == "define" && def == name {
			start := utf16Len("define ")
			refs = append(refs, span{line, start, line, start + utf16Len(name)})
		}
	}
	return refs
}

type semToken struct {
	line, start, length, typ int
}

func (d *document) semanticTokens() []uint32 {
	var tokens []semToken
	for i, line := range d.lines {
		if strings.HasPrefix(line, "#") {
			tokens = append(tokens, semToken{i, 0, utf16Len(line), tokComment})
		}
	}
	for _, c := range d.cmds {
		if c.Name == "" {
			continue
		}
		line := c.Line - 1
		n := utf16Len(c.Name)
		typ := tokFunction
		switch {
		case c.Name == "define" || c.Name == "include":
			typ = tokKeyword
		case d.defs[c.Name].uri != "":
			typ = tokMacro
		}
		tokens = append(tokens, semToken{line, 0, n, typ})
		if c.Name != "define" {
			continue
		}

		head, _, _ := strings.Cut(c.Body, "\n")
		fields := strings.Fields(head)
		pos := n + 1
		for i, f := range fields {
			idx := strings.Index(head, f)
			if idx < 0 {
				break
			}
			typ := tokParameter
			if i == 0 {
				typ = tokMacro
			}
			start := pos + utf16Len(head[:idx])
			tokens = append(tokens, semToken{line, start, utf16Len(f), typ})
			pos = start + utf16Len(f)
			head = head[idx+len(f):]
		}
		for i := 1; i < strings.Count(c.Body, "\n"); i++ {
			if line+i < len(d.lines) {
				tokens = append(tokens, scanVariables(line+i, d.lines[line+i])...)
			}
		}
	}

	slices.SortFunc(tokens, func(a, b semToken) int {
		if a.line != b.line {
			return a.line - b.line
		}
		return a.start - b.start
	})
	data := make([]uint32, 0, len(tokens)*5)
	prevLine, prevChar := 0, 0
	for _, t := range tokens {
		dl, dc := t.line-prevLine, t.start
		if dl == 0 {
			dc = t.start - prevChar
		}
		data = append(data, uint32(dl), uint32(dc), uint32(t.length), uint32(t.typ), 0)
		prevLine, prevChar = t.line, t.start
	}
	return data
}

// scanVariables finds the $name and ${name} parameter uses of a template
// body line.
func scanVariables(lineNum int, line string) []semToken {
	var tokens []semToken
	for i := 0; i < len(line); i++ {
		if line[i] != '$' || i+1 >= len(line) {
			continue
		}
		start := i
		j := i + 1
		if line[j] == '{' {
			end := strings.IndexByte(line[j:], '}')
			if end <= 1 {
				continue
			}
			j += end + 1
		} else {
			for j < len(line) && isIdent(line[j], j == i+1) {
				j++
			}
			if j == i+1 {
				continue
			}
		}
		tokens = append(tokens, semToken{lineNum, utf16Len(line[:start]), utf16Len(line[start:j]), tokVariable})
		i = j - 1
	}
	return tokens
}

func isIdent(b byte, first bool) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_' || !first && b >= '0' && b <= '9'
}

// formatComment turns the comment lines before a define into Markdown.
func formatComment(comment string) string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSuffix(comment, "\n"), "\n") {
		lines = append(lines, strings.TrimSpace(strings.TrimPrefix(line, "#")))
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// commandDocs documents the builtin and score commands on hover.
var commandDocs = map[string]string{
	"define":        "`define name [param...]`\n\nDefines a template. The indented lines below are its body; `$param` is replaced by the arguments of each call.",
	"include":       "`include file`\n\nReads another script of the same directory. The `.lb` extension may be left out.",
	"header":        "`header name value`\n\nAdds a header, written as `\\GreHeader`.",
	"name":          "`name text`\n\nSets the name header of the score.",
	"staff-lines":   "`staff-lines n`\n\nSets the number of staff lines, 2 to 5. Must come before the first syllable.",
	"initial-style": "`initial-style n`\n\nSets the number of lines of the initial letter, 0 for none.",
	"mode":          "`mode m [modifier] [differentia]`\n\nSets the mode, written as `\\GreMode`.",
	"annotation":    "`annotation text`\n\nAdds an annotation line above the initial.",
	"voices":        "`voices n`\n\nSets the number of voices. Only one voice can be written.",
	"clef":          "`clef key [second]`\n\nBefore the first syllable, sets the initial clef, such as `c4` or `f3b`. Later, adds a clef change.",
	"syllable":      "`syllable begin|middle|end|alone|none [markup]`\n\nStarts a syllable at the given position in its word. The markup may use `<i>`, `<b>`, `<sc>`, `<tt>`, `<ul>`, `<c>`, `<e>`, `<v>`, `<sp>` and `{}` around the vowel.",
	"translation":   "`translation markup`\n\nSets the translation of the syllable.",
	"above-lines":   "`above-lines text`\n\nSets the text above the staff at the syllable.",
	"flags":         "`flags flag...`\n\nMarks the syllable: `nlba-start`, `nlba-end`, `euouae-start`, `euouae-end`.",
	"element":       "`element`\n\nStarts a new element, so that the next glyph is not joined to the previous one.",
	"glyph":         "`glyph type [liquescence...] [fuse=n]`\n\nStarts a glyph such as `one-note`, `pes` or `torculus`. The notes follow.",
	"note":          "`note pitch [modifier...]`\n\nAdds a note to the glyph. Modifiers: a shape, a liquescence, a rare sign, `episema`, `episema-above`, `episema-below`, `size=`, `disconnected`, `mora`, `duplex`, `vepisema`, `choral=`, `verb=`.",
	"alt":           "`alt flat|sharp|natural pitch`\n\nAdds an alteration.",
	"gspace":        "`gspace kind`\n\nAdds a space between glyphs.",
	"gverb":         "`gverb tex`\n\nAdds raw TeX between glyphs.",
	"gcustos":       "`gcustos pitch`\n\nAdds a custos between glyphs.",
	"bar":           "`bar kind [n] [vepisema]`\n\nAdds a bar: `virgula`, `minima`, `minor`, `maior`, `finalis`, or `dominica n`.",
	"custos":        "`custos [pitch|auto]`\n\nAdds a custos. Without a pitch it takes the pitch of the next note.",
	"space":         "`space kind`\n\nAdds a space between elements.",
	"eol":           "`eol [ragged]`\n\nEnds the line.",
	"verb":          "`verb tex`\n\nAdds raw TeX between elements.",
	"text-above":    "`text-above text`\n\nAdds text above the staff.",
	"nlba":          "`nlba start|end`\n\nStarts or ends an area without line breaks.",
}
