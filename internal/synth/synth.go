// Package synth generates placeholder documentation for sources that do not
// ship a README. Generation is pure; writing the result back into the source
// tree is a separate, opt-in step.
package synth

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
)

var templates = map[docmodel.Kind]*template.Template{
	docmodel.KindComponent: template.Must(template.New("component").Parse(componentTemplate)),
	docmodel.KindMilestone: template.Must(template.New("milestone").Parse(milestoneTemplate)),
}

const componentTemplate = `# {{.Name}}

{{.Description}}

## Overview

The {{.Title}} component is part of the Nebula UI library. Detailed documentation has not been written yet.

## Usage

` + "```tsx" + `
import { {{.Name}} } from '@nebula/components';
` + "```" + `
`

const milestoneTemplate = `# {{.Title}}

{{.Description}}

## Status

No milestone report has been written yet.
`

type templateData struct {
	Name        string
	Title       string
	Description string
}

// Title turns an identifier such as "DatePicker" or "milestone-2" into
// "Date Picker" / "Milestone 2".
func Title(name string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	// A Caser is stateful, so each call gets its own.
	caser := cases.Title(language.English)
	for i, w := range words {
		// Keep acronyms such as "API" intact.
		if strings.ToUpper(w) != w {
			words[i] = caser.String(w)
		}
	}
	return strings.Join(words, " ")
}

// DefaultDescription is the description used when neither explicit metadata
// nor the document provides one.
func DefaultDescription(kind docmodel.Kind, name string) string {
	switch kind {
	case docmodel.KindComponent:
		return fmt.Sprintf("%s component for the Nebula UI library.", Title(name))
	case docmodel.KindMilestone:
		return fmt.Sprintf("%s of the Nebula UI roadmap.", Title(name))
	default:
		return fmt.Sprintf("%s documentation.", Title(name))
	}
}

// Synthesize renders the placeholder document for a source. An empty
// description falls back to DefaultDescription. Output is deterministic.
func Synthesize(kind docmodel.Kind, name, description string) []byte {
	tmpl, ok := templates[kind]
	if !ok {
		tmpl = templates[docmodel.KindComponent]
	}
	if strings.TrimSpace(description) == "" {
		description = DefaultDescription(kind, name)
	}
	var buf bytes.Buffer
	// Execute cannot fail: the templates are static and the data is plain strings.
	_ = tmpl.Execute(&buf, templateData{Name: name, Title: Title(name), Description: description})
	return buf.Bytes()
}

// ErrExists is returned by WriteBack when the target README already exists.
var ErrExists = errors.New("readme already exists")

// WriteBack stores synthesized content as README.md inside dir. It never
// overwrites an existing file.
func WriteBack(dir string, content []byte) (string, error) {
	target := filepath.Join(dir, "README.md")
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return target, ErrExists
		}
		return target, fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return target, fmt.Errorf("write %s: %w", target, err)
	}
	return target, f.Close()
}
