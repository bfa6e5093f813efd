package xmlmerge

import (
	"bytes"
	"strings"

	"github.com/beevik/etree"

	errs "github.com/matzehuels/xmlmerge/pkg/errors"
)

const (
	// Compact disables indentation: all whitespace between elements is removed.
	Compact = etree.NoIndent

	// DefaultIndent is the number of spaces per nesting level.
	DefaultIndent = 2

	declarationTarget = "xml"
	declarationInst   = `version="1.0" encoding="UTF-8"`
)

// parse reads raw into a document that has exactly one root element.
func parse(raw []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "parse document")
	}
	if err := checkDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// checkDocument verifies the top level of doc: one root element and no
// character data outside of it.
func checkDocument(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if !t.IsWhitespace() {
				return errs.New(errs.ErrCodeParse, "text %q outside of the root element", abbreviate(t.Data))
			}
		}
	}
	switch {
	case roots == 0:
		return errs.New(errs.ErrCodeParse, "document has no root element")
	case roots > 1:
		return errs.New(errs.ErrCodeParse, "document has %d root elements", roots)
	}
	return nil
}

// write renders doc with the given settings. It modifies doc: whitespace,
// the declaration and (optionally) attribute order are normalized in place.
func (o options) write(doc *etree.Document) ([]byte, error) {
	root := doc.Root()
	if root == nil {
		return nil, errs.New(errs.ErrCodeSerialize, "document has no root element")
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	setDeclaration(doc, o.declaration)
	if o.sortAttrs {
		sortAttrs(root)
	}
	indentDocument(doc, o.indent)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeSerialize, err, "write document")
	}
	if o.indent != Compact && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// setDeclaration drops any existing XML declaration and, when enabled,
// inserts the canonical one as the first token.
func setDeclaration(doc *etree.Document, enabled bool) {
	for _, tok := range append([]etree.Token(nil), doc.Child...) {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == declarationTarget {
			doc.RemoveChild(pi)
		}
	}
	if enabled {
		doc.InsertChildAt(0, etree.NewProcInst(declarationTarget, declarationInst))
	}
}

// indentDocument re-indents doc. Only whitespace-only text between elements
// is replaced: mixed content, whitespace-only leaf text and subtrees marked
// xml:space="preserve" are written as they are.
func indentDocument(doc *etree.Document, indent int) {
	sep := ""
	if indent != Compact {
		sep = "\n"
	}
	kids := dropWhitespace(&doc.Element)
	for i, tok := range kids {
		if i > 0 && sep != "" {
			doc.CreateText(sep)
		}
		doc.AddChild(tok)
	}
	if root := doc.Root(); root != nil {
		indentElement(root, 0, indent)
	}
}

func indentElement(e *etree.Element, depth, indent int) {
	if e.SelectAttrValue("xml:space", "") == "preserve" || !elementOnly(e) {
		return
	}
	kids := dropWhitespace(e)
	for _, tok := range kids {
		if indent != Compact {
			e.CreateText("\n" + strings.Repeat(" ", indent*(depth+1)))
		}
		e.AddChild(tok)
		if c, ok := tok.(*etree.Element); ok {
			indentElement(c, depth+1, indent)
		}
	}
	if indent != Compact {
		e.CreateText("\n" + strings.Repeat(" ", indent*depth))
	}
}

// elementOnly reports whether e has child elements and no character data
// besides whitespace. Only such elements may be re-indented.
func elementOnly(e *etree.Element) bool {
	hasElement := false
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.Element:
			hasElement = true
		case *etree.CharData:
			if t.IsCData() || !t.IsWhitespace() {
				return false
			}
		}
	}
	return hasElement
}

// dropWhitespace detaches every child of e and returns the ones that are not
// whitespace-only text.
func dropWhitespace(e *etree.Element) []etree.Token {
	var kept []etree.Token
	for len(e.Child) > 0 {
		tok := e.RemoveChildAt(0)
		if cd, ok := tok.(*etree.CharData); ok && !cd.IsCData() && cd.IsWhitespace() {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

func sortAttrs(e *etree.Element) {
	e.SortAttrs()
	for _, c := range e.ChildElements() {
		sortAttrs(c)
	}
}

// validateDocument checks the root subtree and the comments and processing
// instructions around it.
func validateDocument(doc *etree.Document) error {
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if err := validateElement(t); err != nil {
				return err
			}
		case *etree.Comment:
			if err := validateComment(t, "document"); err != nil {
				return err
			}
		case *etree.ProcInst:
			if err := validateProcInst(t, "document"); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateElement rejects names and character data that cannot be written
// as well-formed XML 1.0.
func validateElement(e *etree.Element) error {
	if err := errs.ValidateName(e.FullTag()); err != nil {
		return errs.Wrap(errs.ErrCodeSerialize, err, "element %s", e.GetPath())
	}
	for _, a := range e.Attr {
		if err := errs.ValidateName(a.FullKey()); err != nil {
			return errs.Wrap(errs.ErrCodeSerialize, err, "attribute on %s", e.GetPath())
		}
		if err := errs.ValidateCharData(a.Value); err != nil {
			return errs.Wrap(errs.ErrCodeSerialize, err, "attribute %s on %s", a.FullKey(), e.GetPath())
		}
	}
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if err := validateElement(t); err != nil {
				return err
			}
		case *etree.CharData:
			if err := errs.ValidateCharData(t.Data); err != nil {
				return errs.Wrap(errs.ErrCodeSerialize, err, "text in %s", e.GetPath())
			}
			if t.IsCData() && strings.Contains(t.Data, "]]>") {
				return errs.New(errs.ErrCodeSerialize, "CDATA section in %s contains \"]]>\"", e.GetPath())
			}
		case *etree.Comment:
			if err := validateComment(t, e.GetPath()); err != nil {
				return err
			}
		case *etree.ProcInst:
			if err := validateProcInst(t, e.GetPath()); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateComment(c *etree.Comment, where string) error {
	if strings.Contains(c.Data, "--") || strings.HasSuffix(c.Data, "-") {
		return errs.New(errs.ErrCodeSerialize, "comment in %s contains \"--\"", where)
	}
	if err := errs.ValidateCharData(c.Data); err != nil {
		return errs.Wrap(errs.ErrCodeSerialize, err, "comment in %s", where)
	}
	return nil
}

// validateProcInst checks a processing instruction. The XML declaration is
// rewritten by the serializer and is not checked here.
func validateProcInst(pi *etree.ProcInst, where string) error {
	if pi.Target == declarationTarget {
		return nil
	}
	if err := errs.ValidateName(pi.Target); err != nil {
		return errs.Wrap(errs.ErrCodeSerialize, err, "processing instruction in %s", where)
	}
	if strings.EqualFold(pi.Target, declarationTarget) {
		return errs.New(errs.ErrCodeSerialize, "processing instruction target %q is reserved", pi.Target)
	}
	if strings.Contains(pi.Inst, "?>") {
		return errs.New(errs.ErrCodeSerialize, "processing instruction %s in %s contains \"?>\"", pi.Target, where)
	}
	if err := errs.ValidateCharData(pi.Inst); err != nil {
		return errs.Wrap(errs.ErrCodeSerialize, err, "processing instruction %s in %s", pi.Target, where)
	}
	return nil
}

// abbreviate shortens s to at most 32 runes for error messages.
func abbreviate(s string) string {
	s = strings.TrimSpace(s)
	const max = 32
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
