package xmlmerge

import (
	"fmt"
	"strconv"
)

// Action is a unit of work applied to the document during a transform.
// It may mutate the document through the [Provider] and must not register
// further actions on the transformer that is running it.
type Action interface {
	Execute(p *Provider) error
}

// ActionFunc adapts an ordinary function to the [Action] interface.
type ActionFunc func(p *Provider) error

// Execute calls f(p).
func (f ActionFunc) Execute(p *Provider) error {
	return f(p)
}

// Namer is implemented by actions that carry a display name. The name is
// used in logs and in [ActionError].
type Namer interface {
	Name() string
}

type namedAction struct {
	Action
	name string
}

func (a namedAction) Name() string { return a.name }

// Named attaches a display name to a.
func Named(name string, a Action) Action {
	return namedAction{Action: a, name: name}
}

// actionName returns the display name of the action at the zero-based
// position i.
func actionName(a Action, i int) string {
	if n, ok := a.(Namer); ok && n.Name() != "" {
		return n.Name()
	}
	return "action-" + strconv.Itoa(i+1)
}

// ActionError reports which registered action failed a transform.
type ActionError struct {
	Index int    // 1-based registration position
	Name  string // display name of the action
	Err   error  // error returned by the action
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	return fmt.Sprintf("action %d (%s): %v", e.Index, e.Name, e.Err)
}

// Unwrap returns the error returned by the action.
func (e *ActionError) Unwrap() error {
	return e.Err
}
