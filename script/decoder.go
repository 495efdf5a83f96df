package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SyntaxError is a line that cannot be read as a command.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Msg)
}

// Decoder reads the commands of a script, without expanding templates.
type Decoder struct {
	r    *bufio.Reader
	line int
	err  error // sticky
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode returns the next command. A blank line is returned as a command
// with an empty name. At the end of the input Decode returns io.EOF, and
// once it has returned an error it keeps returning it.
func (d *Decoder) Decode() (Command, error) {
	if d.err != nil {
		return Command{}, d.err
	}
	var comment strings.Builder
	for {
		line, err := d.readLine()
		if line == "" {
			d.err = err
			if comment.Len() > 0 {
				// Comments with no command after them.
				return Command{Line: d.line - 1, Comment: comment.String()}, nil
			}
			return Command{}, err
		}
		switch line[0] {
		case '#':
			comment.WriteString(line)
		case '\n':
			return Command{Line: d.line, Comment: comment.String()}, nil
		case ' ', '\t':
			d.err = &SyntaxError{Line: d.line, Msg: "unexpected whitespace at start of line"}
			return Command{}, d.err
		default:
			c := Command{Line: d.line, Comment: comment.String()}
			body := line
			for d.continued() {
				next, _ := d.readLine()
				body += next[1:]
			}
			c.Name, c.Body = cutName(body)
			return c, nil
		}
	}
}

// cutName splits the first line of body around the command name. A body
// that continues on the next line keeps its leading newline.
func cutName(body string) (name, rest string) {
	i := strings.IndexAny(body, " \t\n")
	if i < 0 {
		return strings.TrimSpace(body), ""
	}
	return body[:i], strings.TrimLeft(body[i:], " \t")
}

// continued reports whether the next line continues the current command.
func (d *Decoder) continued() bool {
	b, err := d.r.Peek(1)
	return err == nil && b[0] == '\t'
}

func (d *Decoder) readLine() (string, error) {
	d.line++
	s, err := d.r.ReadString('\n')
	if strings.HasSuffix(s, "\r\n") {
		s = s[:len(s)-2] + "\n"
	}
	return s, err
}
