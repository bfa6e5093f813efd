package merger

import (
	"github.com/matzehuels/xmlmerge/pkg/deferred"
	errs "github.com/matzehuels/xmlmerge/pkg/errors"
	"github.com/matzehuels/xmlmerge/pkg/xmlmerge"
)

// XMLContentMerger adds XML hooks to [ContentMerger]. Its transformer is
// resolved through a [deferred.Value]: a non-nil one set with
// [XMLContentMerger.SetTransformer] wins over the provider given at
// construction.
type XMLContentMerger[T any] struct {
	ContentMerger[T]
	transformer *deferred.Value[*xmlmerge.Transformer]
}

// NewXMLContentMerger creates a merger using t.
func NewXMLContentMerger[T any](t *xmlmerge.Transformer) *XMLContentMerger[T] {
	return &XMLContentMerger[T]{transformer: deferred.Of(t)}
}

// NewXMLContentMergerFrom creates a merger whose transformer is resolved
// from p each time it is needed.
func NewXMLContentMergerFrom[T any](p deferred.Provider[*xmlmerge.Transformer]) *XMLContentMerger[T] {
	return &XMLContentMerger[T]{transformer: deferred.From(p)}
}

// Transformer resolves the transformer. A nil result with a nil error means
// none is configured. Provider errors are returned unchanged.
func (m *XMLContentMerger[T]) Transformer() (*xmlmerge.Transformer, error) {
	t, ok, err := m.transformer.Get()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return t, nil
}

// SetTransformer replaces the transformer for all later calls. Passing nil
// falls back to the provider given at construction.
func (m *XMLContentMerger[T]) SetTransformer(t *xmlmerge.Transformer) {
	m.transformer.Set(t)
}

// WithXML registers an action to run on the rendered XML before it is
// written. It fails with NO_TRANSFORMER when no transformer resolves.
func (m *XMLContentMerger[T]) WithXML(a xmlmerge.Action) error {
	t, err := m.Transformer()
	if err != nil {
		return err
	}
	if t == nil {
		return errs.New(errs.ErrCodeNoTransformer, "no XML transformer configured")
	}
	t.AddAction(a)
	return nil
}

// Merge runs the XML hooks on raw. Without a transformer the document is
// only re-serialized.
func (m *XMLContentMerger[T]) Merge(raw []byte) ([]byte, error) {
	t, err := m.Transformer()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return xmlmerge.Canonicalize(raw)
	}
	return t.Transform(raw)
}
