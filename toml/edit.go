package toml

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// assignment locates the value of a top-level key/value pair in a document.
type assignment struct {
	key        string
	valueStart int
	valueEnd   int
}

// layout is the position information of a document's root table.
type layout struct {
	root []assignment
	// insertAt is where new root keys go: after the last root assignment,
	// before the first table header, or at the end of the document.
	insertAt int
	newline  string
}

func (l *layout) find(key string) (assignment, bool) {
	for i := len(l.root) - 1; i >= 0; i-- {
		if l.root[i].key == key {
			return l.root[i], true
		}
	}
	return assignment{}, false
}

// keyValue is a string assignment to apply to the root table. defined is
// set when the document already defines key in a form other than a plain
// root assignment, such as a dotted key or a table header.
type keyValue struct {
	key     string
	value   string
	defined bool
}

var bom = []byte("\xEF\xBB\xBF")

type edit struct {
	start, end int
	text       string
}

// setKeys rewrites the root-table values of kvs in src, appending keys that
// do not exist yet. Everything else in src is kept byte for byte.
func setKeys(src []byte, kvs []keyValue) ([]byte, error) {
	if bytes.HasPrefix(src, bom) {
		out, err := setKeys(src[len(bom):], kvs)
		if err != nil {
			return nil, err
		}
		return append(append([]byte(nil), bom...), out...), nil
	}

	l, err := scan(src)
	if err != nil {
		return nil, err
	}

	var edits []edit
	var added strings.Builder
	for _, kv := range kvs {
		encoded, err := encodeString(kv.value)
		if err != nil {
			return nil, err
		}
		if a, ok := l.find(kv.key); ok {
			edits = append(edits, edit{start: a.valueStart, end: a.valueEnd, text: encoded})
			continue
		}
		if kv.defined {
			return nil, fmt.Errorf("key %q is already defined as a table", kv.key)
		}
		added.WriteString(kv.key + " = " + encoded + l.newline)
	}
	if added.Len() > 0 {
		text := added.String()
		if l.insertAt > 0 && src[l.insertAt-1] != '\n' {
			text = l.newline + text
		}
		edits = append(edits, edit{start: l.insertAt, end: l.insertAt, text: text})
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := append([]byte(nil), src...)
	for _, e := range edits {
		var b bytes.Buffer
		b.Grow(len(out) + len(e.text))
		b.Write(out[:e.start])
		b.WriteString(e.text)
		b.Write(out[e.end:])
		out = b.Bytes()
	}
	return out, nil
}

// encodeString renders v as a TOML string literal.
func encodeString(v string) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]string{"v": v}); err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return strings.TrimPrefix(strings.TrimSpace(buf.String()), "v = "), nil
}

func detectNewline(src []byte) string {
	if i := bytes.IndexByte(src, '\n'); i > 0 && src[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// scan records the top-level assignments preceding the first table header.
func scan(src []byte) (*layout, error) {
	l := &layout{insertAt: len(src), newline: detectNewline(src)}
	s := &scanner{src: src}
	lastLineEnd := -1
	for {
		s.skipBlank()
		if s.eof() {
			break
		}
		if s.peek() == '[' {
			if lastLineEnd < 0 {
				l.insertAt = lineStart(src, s.pos)
			}
			break
		}

		key, simple, err := s.key()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if s.eof() || s.peek() != '=' {
			return nil, fmt.Errorf("expected '=' after key %q at offset %d", key, s.pos)
		}
		s.pos++
		s.skipSpace()

		start := s.pos
		end, err := s.value()
		if err != nil {
			return nil, err
		}
		if simple {
			l.root = append(l.root, assignment{key: key, valueStart: start, valueEnd: end})
		}
		lastLineEnd = s.pos
	}
	if lastLineEnd >= 0 {
		l.insertAt = lastLineEnd
	}
	return l, nil
}

func lineStart(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

// scanner walks just enough TOML syntax to find where values begin and end.
type scanner struct {
	src []byte
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte { return s.src[s.pos] }

func (s *scanner) hasPrefix(p string) bool {
	return bytes.HasPrefix(s.src[s.pos:], []byte(p))
}

// skipBlank skips whitespace, newlines, and comments.
func (s *scanner) skipBlank() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.pos++
		case '#':
			s.skipLine()
		default:
			return
		}
	}
}

// skipSpace skips spaces and tabs.
func (s *scanner) skipSpace() {
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
}

// skipLine moves past the next newline.
func (s *scanner) skipLine() {
	if i := bytes.IndexByte(s.src[s.pos:], '\n'); i >= 0 {
		s.pos += i + 1
		return
	}
	s.pos = len(s.src)
}

// key reads a possibly dotted key. simple is false for dotted keys.
func (s *scanner) key() (key string, simple bool, err error) {
	var parts []string
	for {
		s.skipSpace()
		part, err := s.keyPart()
		if err != nil {
			return "", false, err
		}
		parts = append(parts, part)
		s.skipSpace()
		if !s.eof() && s.peek() == '.' {
			s.pos++
			continue
		}
		return strings.Join(parts, "."), len(parts) == 1, nil
	}
}

func (s *scanner) keyPart() (string, error) {
	if s.eof() {
		return "", fmt.Errorf("unexpected end of document, expected key")
	}
	start := s.pos
	switch c := s.peek(); {
	case c == '"':
		if err := s.quoted('"', true); err != nil {
			return "", err
		}
		raw := string(s.src[start:s.pos])
		if unquoted, err := strconv.Unquote(raw); err == nil {
			return unquoted, nil
		}
		return raw[1 : len(raw)-1], nil
	case c == '\'':
		if err := s.quoted('\'', false); err != nil {
			return "", err
		}
		return string(s.src[start+1 : s.pos-1]), nil
	case isBare(c):
		for !s.eof() && isBare(s.peek()) {
			s.pos++
		}
		return string(s.src[start:s.pos]), nil
	default:
		return "", fmt.Errorf("unexpected %q at offset %d, expected key", c, s.pos)
	}
}

// value consumes a value and the rest of its line, returning the offset just
// past the value's last character.
func (s *scanner) value() (int, error) {
	depth := 0
	end := s.pos
	for !s.eof() {
		c := s.peek()
		switch {
		case s.hasPrefix(`"""`):
			if err := s.multiline(`"""`, true); err != nil {
				return 0, err
			}
			end = s.pos
		case s.hasPrefix(`'''`):
			if err := s.multiline(`'''`, false); err != nil {
				return 0, err
			}
			end = s.pos
		case c == '"':
			if err := s.quoted('"', true); err != nil {
				return 0, err
			}
			end = s.pos
		case c == '\'':
			if err := s.quoted('\'', false); err != nil {
				return 0, err
			}
			end = s.pos
		case c == '[' || c == '{':
			depth++
			s.pos++
			end = s.pos
		case c == ']' || c == '}':
			depth--
			if depth < 0 {
				return 0, fmt.Errorf("unbalanced %q at offset %d", c, s.pos)
			}
			s.pos++
			end = s.pos
		case c == '#':
			s.skipLine()
			if depth == 0 {
				return end, nil
			}
		case c == '\n':
			s.pos++
			if depth == 0 {
				return end, nil
			}
		case c == ' ' || c == '\t' || c == '\r':
			s.pos++
		default:
			s.pos++
			end = s.pos
		}
	}
	if depth != 0 {
		return 0, fmt.Errorf("unterminated array or inline table")
	}
	return end, nil
}

func (s *scanner) quoted(q byte, escapes bool) error {
	start := s.pos
	s.pos++
	for !s.eof() {
		c := s.peek()
		switch {
		case escapes && c == '\\':
			s.pos += 2
		case c == q:
			s.pos++
			return nil
		case c == '\n':
			return fmt.Errorf("unterminated string at offset %d", start)
		default:
			s.pos++
		}
	}
	return fmt.Errorf("unterminated string at offset %d", start)
}

func (s *scanner) multiline(delim string, escapes bool) error {
	start := s.pos
	s.pos += len(delim)
	for !s.eof() {
		switch {
		case escapes && s.peek() == '\\':
			s.pos += 2
		case s.hasPrefix(delim):
			s.pos += len(delim)
			// Up to two quotes may directly precede the closing delimiter.
			for i := 0; i < 2 && !s.eof() && s.peek() == delim[0]; i++ {
				s.pos++
			}
			return nil
		default:
			s.pos++
		}
	}
	return fmt.Errorf("unterminated multi-line string at offset %d", start)
}

func isBare(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}
