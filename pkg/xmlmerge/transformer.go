package xmlmerge

import (
	"io"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/xmlmerge/pkg/errors"
	"github.com/matzehuels/xmlmerge/pkg/observability"
)

// Transformer holds the ordered action registry and the output settings.
// The zero value is not usable; create one with [New].
type Transformer struct {
	mu      sync.Mutex
	actions []Action
	opts    options
}

type options struct {
	indent      int
	declaration bool
	sortAttrs   bool
	logger      *log.Logger
}

// Option configures a [Transformer].
type Option func(*options)

// WithIndent sets the number of spaces per nesting level. Use [Compact] to
// write the document without any whitespace between elements.
func WithIndent(spaces int) Option {
	return func(o *options) {
		if spaces < 0 {
			spaces = Compact
		}
		o.indent = spaces
	}
}

// WithDeclaration controls whether the output starts with an XML
// declaration. It is enabled by default.
func WithDeclaration(enabled bool) Option {
	return func(o *options) {
		o.declaration = enabled
	}
}

// WithSortAttributes writes the attributes of every element sorted by name
// instead of in document order.
func WithSortAttributes(enabled bool) Option {
	return func(o *options) {
		o.sortAttrs = enabled
	}
}

// WithLogger sets the logger used for per-action debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a Transformer with no actions.
func New(opts ...Option) *Transformer {
	o := options{
		indent:      DefaultIndent,
		declaration: true,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Transformer{opts: o}
}

// AddAction appends a to the registry. Nil actions are ignored.
func (t *Transformer) AddAction(a Action) {
	if a == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions = append(t.actions, a)
}

// Transform parses raw, applies every registered action in order and returns
// the serialized result.
func (t *Transformer) Transform(raw []byte) ([]byte, error) {
	doc, err := parse(raw)
	if err != nil {
		return nil, err
	}
	return t.run(doc)
}

// TransformDocument applies the registered actions to a copy of doc and
// returns the serialized result. doc itself is left untouched.
func (t *Transformer) TransformDocument(doc *etree.Document) ([]byte, error) {
	if doc == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "document is nil")
	}
	work := doc.Copy()
	if err := checkDocument(work); err != nil {
		return nil, err
	}
	return t.run(work)
}

// TransformTo transforms raw and writes the result to w. Nothing is written
// when the transform fails.
func (t *Transformer) TransformTo(w io.Writer, raw []byte) error {
	out, err := t.Transform(raw)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return errs.Wrap(errs.ErrCodeSerialize, err, "write output")
	}
	return nil
}

// Canonicalize re-serializes raw without applying any action.
func Canonicalize(raw []byte, opts ...Option) ([]byte, error) {
	return New(opts...).Transform(raw)
}

// snapshot returns the actions registered so far. Later registrations do
// not affect the returned slice.
func (t *Transformer) snapshot() []Action {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Action(nil), t.actions...)
}

func (t *Transformer) run(doc *etree.Document) ([]byte, error) {
	actions := t.snapshot()
	hooks := observability.Transform()
	start := time.Now()

	hooks.OnTransformStart(len(actions))
	out, err := t.apply(doc, actions)
	hooks.OnTransformComplete(len(actions), len(out), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	t.opts.logger.Debug("transformed document",
		"actions", len(actions),
		"bytes", len(out),
		"duration", time.Since(start))
	return out, nil
}

func (t *Transformer) apply(doc *etree.Document, actions []Action) ([]byte, error) {
	p := newProvider(doc)
	hooks := observability.Transform()

	for i, a := range actions {
		name := actionName(a, i)
		t.opts.logger.Debug("applying action", "index", i+1, "name", name)

		start := time.Now()
		err := a.Execute(p)
		if err == nil {
			// Text left unparseable is the fault of the action that edited it.
			_, err = p.Document()
		}
		hooks.OnActionComplete(i+1, name, time.Since(start), err)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeActionFailed,
				&ActionError{Index: i + 1, Name: name, Err: err},
				"transform aborted")
		}
	}

	final, err := p.Document()
	if err != nil {
		return nil, err
	}
	return t.opts.write(final)
}
