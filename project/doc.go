// Package project defines the video project entity model and its store.
//
// A [Project] is a named, ordered collection of [Segment] values plus render
// settings. Each segment carries a fragment of scene code and a [Placement]
// that decides where the fragment lands in the generated program:
//
//   - [PlacementPreamble]: top-level code emitted before the scene class
//   - [PlacementConstruct]: statements emitted inside the construct method
//
// Segment order is insertion order and is semantically significant: it is
// the statement order of the generated program.
//
// # Ownership
//
// A [Store] exclusively owns its projects. [Store.Get] and [Store.List]
// return deep copies; mutation happens only through [Store.Update], which
// runs the caller's function against the owned value.
package project
