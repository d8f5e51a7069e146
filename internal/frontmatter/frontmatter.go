// Package frontmatter reads the optional YAML header of Markdown documents.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a YAML header but
// never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Fields are the header keys that feed documentation metadata. Unknown keys
// are ignored.
type Fields struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Summary     string   `yaml:"summary"`
	Tags        []string `yaml:"tags"`
	Category    string   `yaml:"category"`
}

// Text returns the description, falling back to the summary key.
func (f Fields) Text() string {
	if f.Description != "" {
		return f.Description
	}
	return f.Summary
}

// Split separates a `---` delimited YAML header from the Markdown body.
// When the document has no header, had is false and body is the full input.
func Split(content []byte) (header []byte, body []byte, had bool, err error) {
	nl := newline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len(nl+"---")
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes the header into Fields. A document without
// a header yields zero Fields and the full body.
func Parse(content []byte) (Fields, []byte, error) {
	header, body, had, err := Split(content)
	if err != nil {
		return Fields{}, content, err
	}
	var f Fields
	if !had || len(bytes.TrimSpace(header)) == 0 {
		return f, body, nil
	}
	if err := yaml.Unmarshal(header, &f); err != nil {
		return Fields{}, body, fmt.Errorf("decode frontmatter: %w", err)
	}
	return f, body, nil
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
