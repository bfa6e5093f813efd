// Package xmlmerge applies an ordered list of user actions to a generated XML
// document before it is written out.
//
// # Overview
//
// Tools that generate configuration files for other programs (IDE project
// files, build descriptors) often need to let their users adjust the result
// without teaching the generator about every customization. A [Transformer]
// collects such adjustments as [Action] values during configuration and
// replays them on each generated document:
//
//	t := xmlmerge.New()
//	t.AddAction(xmlmerge.ActionFunc(func(p *xmlmerge.Provider) error {
//	    _, err := p.AppendChild("/root", "b")
//	    return err
//	}))
//	t.AddAction(xmlmerge.ActionFunc(func(p *xmlmerge.Provider) error {
//	    return p.SetAttr("/root", "done", "true")
//	}))
//
//	out, err := t.Transform([]byte(`<root><a/></root>`))
//
// # Ordering
//
// Actions run in registration order. Duplicates are kept and each action sees
// every mutation made by the actions before it. The registry is snapshotted
// when a transform starts, so actions added while a transform is running
// apply to later transforms only.
//
// # Failures
//
// Transforms are all-or-nothing. Malformed input fails with a PARSE_ERROR
// before any action runs. The first action returning an error aborts the
// transform with an ACTION_FAILED error wrapping an [*ActionError] that names
// the failing action. A tree that cannot be written as XML fails with
// SERIALIZE_ERROR. No output is produced in any of these cases.
//
// # Output
//
// Output is written by a deterministic writer: whitespace between elements is
// normalized to the configured indentation, attributes keep document order
// unless [WithSortAttributes] is set, and an XML declaration is emitted unless
// disabled with [WithDeclaration]. Transforming with no actions therefore
// yields a canonical re-serialization of the input (see [Canonicalize]).
//
// # Concurrency
//
// AddAction and the transform methods may be called from different
// goroutines; the registry is guarded. Each transform gets its own
// [Provider], which must not escape the action that receives it.
package xmlmerge
