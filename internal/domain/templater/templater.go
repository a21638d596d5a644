// Package templater renders copy-pasteable commands from snippet templates.
//
// Templates use text/template syntax and reference credential fields by name,
// e.g. {{.hubspotClientId}}. A field the user left blank is replaced by its
// fallback label so the displayed command is always complete.
package templater

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
)

const (
	unixContinuation    = "\\\n"
	windowsContinuation = "^\n"
)

// Values holds the credentials a user typed in, keyed by field name.
// It only ever lives in memory.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Filled returns the number of non-empty values among names.
func (v Values) Filled(names []string) int {
	n := 0
	for _, name := range names {
		if v[name] != "" {
			n++
		}
	}
	return n
}

// Fallbacks maps a field name to the label substituted when it is blank.
type Fallbacks map[string]string

// Names returns the field names in sorted order.
func (f Fallbacks) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds the template data: the held value when non-empty, the
// fallback label otherwise. Values for undeclared fields are dropped.
func Resolve(values Values, fallbacks Fallbacks) map[string]string {
	data := make(map[string]string, len(fallbacks))
	for name, label := range fallbacks {
		if v := values[name]; v != "" {
			data[name] = v
			continue
		}
		data[name] = label
	}
	return data
}

// FormatForOS adapts line continuations to the target shell. Windows gets
// caret continuations; every other OS is returned unchanged.
func FormatForOS(command string, o platform.OS) string {
	if o == platform.Windows {
		return strings.ReplaceAll(command, unixContinuation, windowsContinuation)
	}
	return command
}

// Template is a compiled snippet template.
type Template struct {
	name string
	src  string
	tmpl *template.Template
}

// Compile parses src. Unknown field references are reported at render time.
func Compile(name, src string) (*Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return &Template{name: name, src: src, tmpl: tmpl}, nil
}

// MustCompile is like Compile but panics on error. Intended for literals in tests.
func MustCompile(name, src string) *Template {
	t, err := Compile(name, src)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Source returns the raw template text.
func (t *Template) Source() string {
	return t.src
}

// Render substitutes values (or fallbacks) and applies the OS transform.
func (t *Template) Render(values Values, fallbacks Fallbacks, o platform.OS) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, Resolve(values, fallbacks)); err != nil {
		return "", fmt.Errorf("render template %s: %w", t.name, err)
	}
	return FormatForOS(buf.String(), o), nil
}

// Render compiles and renders src in one call.
func Render(src string, values Values, fallbacks Fallbacks, o platform.OS) (string, error) {
	t, err := Compile("inline", src)
	if err != nil {
		return "", err
	}
	return t.Render(values, fallbacks, o)
}
