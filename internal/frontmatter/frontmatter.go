// Package frontmatter splits, parses and renders the YAML metadata header that
// precedes a vault document's Markdown body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/vaultpress/internal/apperr"
)

const delim = "---"

// ErrMissingClosingDelimiter is returned when a header is opened but never closed.
var ErrMissingClosingDelimiter = errors.New("missing closing frontmatter delimiter")

// Document is a vault file split into its parsed header and raw body.
type Document struct {
	Path string
	Meta Metadata
	Body string
}

// ParseFile reads and parses the document at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse splits data and decodes its header. A document without a header parses
// to empty metadata. Malformed headers yield an error wrapping apperr.ErrParse.
func Parse(data []byte) (*Document, error) {
	header, body, err := Split(data)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w: %w", apperr.ErrParse, err)
	}
	doc := &Document{Body: body}
	if len(bytes.TrimSpace(header)) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(header, &doc.Meta); err != nil {
		return nil, fmt.Errorf("frontmatter: %w: %w", apperr.ErrParse, err)
	}
	return doc, nil
}

// Split separates the YAML header (between leading --- lines) from the body.
// Line endings are normalised to \n. If data does not open with a delimiter
// line the whole input is body.
func Split(data []byte) (header []byte, body string, err error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	if text != delim && !strings.HasPrefix(text, delim+"\n") {
		return nil, text, nil
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(text, delim), "\n")

	// Closing delimiter: a line that is exactly "---".
	pos := 0
	for {
		var lineStart int
		if pos == 0 && strings.HasPrefix(rest, delim) {
			lineStart = 0
		} else {
			idx := strings.Index(rest[pos:], "\n"+delim)
			if idx < 0 {
				return nil, "", ErrMissingClosingDelimiter
			}
			lineStart = pos + idx + 1
		}
		end := lineStart + len(delim)
		if end == len(rest) || rest[end] == '\n' {
			body = ""
			if end < len(rest) {
				body = rest[end+1:]
			}
			return []byte(rest[:lineStart]), body, nil
		}
		pos = end
	}
}

// Render writes meta as a YAML header followed by body. The output always ends
// with a newline.
func Render(meta Metadata, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delim + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("frontmatter: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("frontmatter: encode: %w", err)
	}

	buf.WriteString(delim + "\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
