package xmlmerge

import (
	"strings"

	"github.com/beevik/etree"

	errs "github.com/matzehuels/xmlmerge/pkg/errors"
)

// Provider is the mutable view of the document handed to each action.
//
// The document is available in two forms. [Provider.Document] and
// [Provider.Root] expose the element tree; [Provider.Text] exposes the raw
// XML text for string-level edits. Switching from text back to the tree
// re-parses the text, so every action sees the cumulative result of the
// actions before it in whichever form it asks for.
//
// The path helpers use etree path syntax and act on the first matching
// element, except [Provider.Remove] which removes every match. A path that
// matches nothing is reported as a NOT_FOUND error.
type Provider struct {
	doc  *etree.Document
	text *strings.Builder
}

func newProvider(doc *etree.Document) *Provider {
	return &Provider{doc: doc}
}

// Document returns the element tree, parsing the text form first if an
// earlier action switched to it.
func (p *Provider) Document() (*etree.Document, error) {
	if p.text != nil {
		doc, err := parse([]byte(p.text.String()))
		if err != nil {
			return nil, err
		}
		p.doc, p.text = doc, nil
	}
	return p.doc, nil
}

// Root returns the root element of the document.
func (p *Provider) Root() (*etree.Element, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, errs.New(errs.ErrCodeNotFound, "document has no root element")
	}
	return root, nil
}

// Text returns the document as editable XML text. Changes made to the
// builder are picked up by the next tree access, and at the latest when the
// current action returns.
func (p *Provider) Text() *strings.Builder {
	if p.text == nil {
		p.text = &strings.Builder{}
		// A strings.Builder never fails a write.
		_, _ = p.doc.WriteTo(p.text)
		p.doc = nil
	}
	return p.text
}

// Find returns the first element matching path.
func (p *Provider) Find(path string) (*etree.Element, error) {
	matches, err := p.FindAll(path)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errs.New(errs.ErrCodeNotFound, "no element matches %q", path)
	}
	return matches[0], nil
}

// FindAll returns every element matching path, in document order. An empty
// result is not an error.
func (p *Provider) FindAll(path string) ([]*etree.Element, error) {
	compiled, err := etree.CompilePath(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "compile path %q", path)
	}
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	return doc.FindElementsPath(compiled), nil
}

// AppendChild creates an element named tag as the last child of the first
// element matching path and returns it.
func (p *Provider) AppendChild(path, tag string) (*etree.Element, error) {
	if err := errs.ValidateName(tag); err != nil {
		return nil, err
	}
	parent, err := p.Find(path)
	if err != nil {
		return nil, err
	}
	return parent.CreateElement(tag), nil
}

// SetAttr sets an attribute on the first element matching path, replacing
// any existing value.
func (p *Provider) SetAttr(path, key, value string) error {
	if err := errs.ValidateName(key); err != nil {
		return err
	}
	e, err := p.Find(path)
	if err != nil {
		return err
	}
	e.CreateAttr(key, value)
	return nil
}

// RemoveAttr removes an attribute from the first element matching path.
// Removing an attribute that is not present is not an error.
func (p *Provider) RemoveAttr(path, key string) error {
	e, err := p.Find(path)
	if err != nil {
		return err
	}
	e.RemoveAttr(key)
	return nil
}

// SetText replaces the character data of the first element matching path.
func (p *Provider) SetText(path, text string) error {
	e, err := p.Find(path)
	if err != nil {
		return err
	}
	e.SetText(text)
	return nil
}

// Rename changes the tag of the first element matching path.
func (p *Provider) Rename(path, tag string) error {
	if err := errs.ValidateName(tag); err != nil {
		return err
	}
	e, err := p.Find(path)
	if err != nil {
		return err
	}
	e.Space, e.Tag = splitName(tag)
	return nil
}

// Remove detaches every element matching path and returns how many were
// removed.
func (p *Provider) Remove(path string) (int, error) {
	matches, err := p.FindAll(path)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, errs.New(errs.ErrCodeNotFound, "no element matches %q", path)
	}
	for _, e := range matches {
		if parent := e.Parent(); parent != nil {
			parent.RemoveChild(e)
		}
	}
	return len(matches), nil
}

func splitName(name string) (space, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
