package script

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/xmlmerge/pkg/errors"
	"github.com/matzehuels/xmlmerge/pkg/xmlmerge"
)

// Operation names.
const (
	OpAppend     = "append"
	OpRemove     = "remove"
	OpSetAttr    = "set-attr"
	OpRemoveAttr = "remove-attr"
	OpSetText    = "set-text"
	OpRename     = "rename"
	OpReplace    = "replace"
)

// ValidOps is the set of supported operations.
var ValidOps = map[string]bool{
	OpAppend:     true,
	OpRemove:     true,
	OpSetAttr:    true,
	OpRemoveAttr: true,
	OpSetText:    true,
	OpRename:     true,
	OpReplace:    true,
}

// Script is a parsed edit script.
type Script struct {
	Indent         *int   `toml:"indent"`
	Declaration    *bool  `toml:"declaration"`
	SortAttributes bool   `toml:"sort_attributes"`
	Steps          []Step `toml:"action"`
}

// Step is a single [[action]] table.
type Step struct {
	Op       string            `toml:"op"`
	Name     string            `toml:"name"`
	Path     string            `toml:"path"`
	Tag      string            `toml:"tag"`
	Key      string            `toml:"key"`
	Value    string            `toml:"value"`
	Text     string            `toml:"text"`
	Attrs    map[string]string `toml:"attrs"`
	Find     string            `toml:"find"`
	Replace  string            `toml:"replace"`
	Optional bool              `toml:"optional"`
}

// Parse decodes and validates a script. Unknown keys are rejected so that a
// misspelled field does not silently turn into a no-op.
func Parse(data []byte) (*Script, error) {
	var s Script
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidScript, err, "decode script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidScript, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ReadSource returns the raw script at path without parsing it. A missing
// file fails with FILE_NOT_FOUND.
func ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "script %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return data, nil
}

// Validate checks every step for the fields its operation needs.
func (s *Script) Validate() error {
	if s.Indent != nil && *s.Indent > 16 {
		return errs.New(errs.ErrCodeInvalidScript, "indent %d is too large (max 16)", *s.Indent)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidScript, err, "action %d (%s)", i+1, st.Label())
		}
	}
	return nil
}

func (st Step) validate() error {
	if !ValidOps[st.Op] {
		return fmt.Errorf("unknown op %q", st.Op)
	}
	if st.Op == OpReplace {
		if st.Find == "" {
			return errors.New("find is required")
		}
		return nil
	}

	if err := errs.ValidatePath(st.Path); err != nil {
		return err
	}
	switch st.Op {
	case OpAppend, OpRename:
		if err := errs.ValidateName(st.Tag); err != nil {
			return err
		}
		for k := range st.Attrs {
			if err := errs.ValidateName(k); err != nil {
				return err
			}
		}
	case OpSetAttr, OpRemoveAttr:
		if err := errs.ValidateName(st.Key); err != nil {
			return err
		}
	}
	return nil
}

// Label is the display name used for the step in logs and errors.
func (st Step) Label() string {
	if st.Name != "" {
		return st.Name
	}
	if st.Op == OpReplace {
		return st.Op
	}
	return st.Op + " " + st.Path
}

// Options returns the writer settings declared by the script.
func (s *Script) Options() []xmlmerge.Option {
	var opts []xmlmerge.Option
	if s.Indent != nil {
		opts = append(opts, xmlmerge.WithIndent(*s.Indent))
	}
	if s.Declaration != nil {
		opts = append(opts, xmlmerge.WithDeclaration(*s.Declaration))
	}
	if s.SortAttributes {
		opts = append(opts, xmlmerge.WithSortAttributes(true))
	}
	return opts
}

// Settings returns the effective writer settings, with defaults filled in
// for keys the script leaves out.
func (s *Script) Settings() (indent int, declaration, sortAttrs bool) {
	indent, declaration = xmlmerge.DefaultIndent, true
	if s.Indent != nil {
		indent = *s.Indent
		if indent < 0 {
			indent = xmlmerge.Compact
		}
	}
	if s.Declaration != nil {
		declaration = *s.Declaration
	}
	return indent, declaration, s.SortAttributes
}

// Actions converts the steps to actions, in file order.
func (s *Script) Actions() []xmlmerge.Action {
	actions := make([]xmlmerge.Action, len(s.Steps))
	for i, st := range s.Steps {
		actions[i] = xmlmerge.Named(st.Label(), st.action())
	}
	return actions
}

// Apply registers the script's actions on t.
func (s *Script) Apply(t *xmlmerge.Transformer) {
	for _, a := range s.Actions() {
		t.AddAction(a)
	}
}

// Transformer creates a transformer with the script's writer settings and
// actions. extra options are applied after the script's own.
func (s *Script) Transformer(extra ...xmlmerge.Option) *xmlmerge.Transformer {
	t := xmlmerge.New(append(s.Options(), extra...)...)
	s.Apply(t)
	return t
}

func (st Step) action() xmlmerge.Action {
	return xmlmerge.ActionFunc(func(p *xmlmerge.Provider) error {
		err := st.execute(p)
		if st.Optional && errs.Is(err, errs.ErrCodeNotFound) {
			return nil
		}
		return err
	})
}

func (st Step) execute(p *xmlmerge.Provider) error {
	switch st.Op {
	case OpAppend:
		e, err := p.AppendChild(st.Path, st.Tag)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(st.Attrs))
		for k := range st.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			e.CreateAttr(k, st.Attrs[k])
		}
		if st.Text != "" {
			e.SetText(st.Text)
		}
		return nil
	case OpRemove:
		_, err := p.Remove(st.Path)
		return err
	case OpSetAttr:
		return p.SetAttr(st.Path, st.Key, st.Value)
	case OpRemoveAttr:
		return p.RemoveAttr(st.Path, st.Key)
	case OpSetText:
		return p.SetText(st.Path, st.Text)
	case OpRename:
		return p.Rename(st.Path, st.Tag)
	case OpReplace:
		b := p.Text()
		s := b.String()
		if !strings.Contains(s, st.Find) {
			return errs.New(errs.ErrCodeNotFound, "text %q not found", st.Find)
		}
		b.Reset()
		b.WriteString(strings.ReplaceAll(s, st.Find, st.Replace))
		return nil
	}
	return errs.New(errs.ErrCodeUnsupported, "unknown op %q", st.Op)
}
