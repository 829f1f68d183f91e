package libdep

import (
	"bytes"
	"context"
)

// Extractor finds the include targets of one file. Targets are returned in
// document order with their delimiters stripped. With WithWorkers
// above 1, graph builds call Includes from several goroutines.
type Extractor interface {
	Name() string
	Includes(ctx context.Context, name string, src []byte) ([]string, error)
}

// LexicalExtractor returns the default Extractor, a line-oriented scan of
// directive lines. It does no macro expansion and ignores conditional
// compilation.
func LexicalExtractor() Extractor { return lexicalExtractor{} }

type lexicalExtractor struct{}

func (lexicalExtractor) Name() string { return "lexical" }

func (lexicalExtractor) Includes(_ context.Context, _ string, src []byte) ([]string, error) {
	return ScanIncludes(src), nil
}

// ScanIncludes returns the targets of every "#include" line in buf.
//
// A directive is recognized only when '#' is the first non-blank character
// of the line, optionally followed by blanks and then "include". The target
// must start with '<' or '"' and ends at the first matching terminator, or
// at the end of the line when the terminator is missing.
func ScanIncludes(buf []byte) []string {
	var includes []string
	for len(buf) > 0 {
		var line []byte
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			line, buf = buf, nil
		} else {
			line, buf = buf[:i], buf[i+1:]
		}
		if target, ok := parseIncludeLine(line); ok {
			includes = append(includes, target)
		}
	}
	return includes
}

func parseIncludeLine(line []byte) (string, bool) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	line = trimBlanks(line)
	if len(line) == 0 || line[0] != '#' {
		return "", false
	}
	line = trimBlanks(line[1:])
	if !bytes.HasPrefix(line, []byte("include")) {
		return "", false
	}
	line = trimBlanks(line[len("include"):])
	if len(line) < 2 {
		return "", false
	}

	var term byte
	switch line[0] {
	case '<':
		term = '>'
	case '"':
		term = '"'
	default:
		return "", false
	}
	line = line[1:]
	if k := bytes.IndexByte(line, term); k >= 0 {
		line = line[:k]
	}
	if len(line) == 0 {
		return "", false
	}
	return string(line), true
}

// trimBlanks strips leading spaces and tabs only.
func trimBlanks(b []byte) []byte {
	return bytes.TrimLeft(b, " \t")
}
