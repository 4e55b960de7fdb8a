// Package mapping loads entity mapping files and renders every fragment they declare.
//
// A mapping file is YAML:
//
//	dialect: postgres
//	types: [ltree]
//	entities:
//	  - name: Customer
//	    table: customers
//	    columns: [first_name, last_name]
//	    formulas:
//	      full_name: "first_name || ' ' || last_name"
//	    where: "active = true"
//	    order_by: "last_name, first_name"
//	    read_fragments:
//	      name: "upper(first_name)"
//
// Unknown fields are rejected.
package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"gopkg.in/yaml.v3"
)

// Document is a parsed mapping file.
type Document struct {
	Dialect  string   `yaml:"dialect"`
	Types    []string `yaml:"types"`
	Entities []Entity `yaml:"entities"`

	// Path is the file the document was loaded from, empty for Parse.
	Path string `yaml:"-"`
}

// Entity maps one table and the fragments attached to it.
type Entity struct {
	Name          string            `yaml:"name"`
	Table         string            `yaml:"table"`
	Columns       []string          `yaml:"columns"`
	Formulas      map[string]string `yaml:"formulas"`
	Where         string            `yaml:"where"`
	OrderBy       string            `yaml:"order_by"`
	ReadFragments map[string]string `yaml:"read_fragments"`
}

// ParseError represents a malformed mapping file.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Load reads and parses a mapping file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.File = path
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse decodes a mapping document. Unknown fields are errors.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		// an empty file decodes to io.EOF
		if len(bytes.TrimSpace(data)) == 0 {
			return &doc, nil
		}
		return nil, yamlError(err)
	}
	return &doc, nil
}

// yamlError converts a yaml.v3 error into a ParseError, keeping the first line number.
func yamlError(err error) error {
	var terr *yaml.TypeError
	if errors.As(err, &terr) && len(terr.Errors) > 0 {
		msg := terr.Errors[0]
		perr := &ParseError{Message: msg}
		// yaml.v3 messages look like "line 4: field foo not found in type mapping.Entity"
		if _, err := fmt.Sscanf(msg, "line %d:", &perr.Line); err == nil {
			perr.Message = strings.TrimSpace(msg[strings.Index(msg, ":")+1:])
		}
		return perr
	}
	return &ParseError{Message: err.Error()}
}

// Validate checks the document for problems that would make rendering meaningless.
// All problems are reported together.
func (d *Document) Validate() error {
	var errs []error

	if d.Dialect != "" {
		if _, err := dialect.Lookup(d.Dialect); err != nil {
			errs = append(errs, err)
		}
	}

	seen := make(map[string]struct{}, len(d.Entities))
	for i, e := range d.Entities {
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("entities[%d]: name is required", i))
			continue
		}
		if _, dup := seen[e.Name]; dup {
			errs = append(errs, fmt.Errorf("entity %s: duplicate name", e.Name))
		}
		seen[e.Name] = struct{}{}

		if len(e.ReadFragments) > 0 && len(e.Columns) == 0 {
			errs = append(errs, fmt.Errorf("entity %s: read_fragments need columns", e.Name))
		}
		for name, frag := range e.Formulas {
			if strings.TrimSpace(frag) == "" {
				errs = append(errs, fmt.Errorf("entity %s: formula %s is empty", e.Name, name))
			}
		}
	}

	return errors.Join(errs...)
}

// FragmentCount returns how many fragments the document declares.
func (d *Document) FragmentCount() int {
	n := 0
	for _, e := range d.Entities {
		n += len(e.Formulas) + len(e.ReadFragments)
		if e.Where != "" {
			n++
		}
		if e.OrderBy != "" {
			n++
		}
	}
	return n
}
