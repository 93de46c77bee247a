package deinflect

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

type yamlGroup struct {
	Reason string     `yaml:"reason"`
	Rules  []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	Suffix      string   `yaml:"suffix"`
	Replacement string   `yaml:"replacement"`
	In          []string `yaml:"in"`
	Out         []string `yaml:"out"`
}

var loadDefault = sync.OnceValues(func() (*Table, error) {
	return Load(bytes.NewReader(defaultRules))
})

// Default returns the built-in rule table. It is parsed once per process and
// shared by all callers.
func Default() *Table {
	t, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("deinflect: built-in rule table: %v", err))
	}
	return t
}

// Load parses a YAML rule table. Rules keep the order of the document, which
// determines the order of Deinflect results within a level.
func Load(r io.Reader) (*Table, error) {
	var groups []yamlGroup
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&groups); err != nil {
		if errors.Is(err, io.EOF) {
			return NewTable(nil)
		}
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidTable, err)
	}

	var rules []Rule
	for gi, g := range groups {
		if g.Reason == "" {
			return nil, fmt.Errorf("%w: group %d: missing reason", ErrInvalidTable, gi)
		}
		for ri, yr := range g.Rules {
			in, err := ParseTags(yr.In)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: in: %w", g.Reason, ri, err)
			}
			out, err := ParseTags(yr.Out)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: out: %w", g.Reason, ri, err)
			}
			rules = append(rules, Rule{
				Reason:      g.Reason,
				Suffix:      yr.Suffix,
				Replacement: yr.Replacement,
				In:          in,
				Out:         out,
			})
		}
	}

	return NewTable(rules)
}

// LoadFile reads a rule table from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule table: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("rule table %s: %w", path, err)
	}
	return t, nil
}
