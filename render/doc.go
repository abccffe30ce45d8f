// Package render invokes the external manim renderer and resolves the path
// of the artifact it produces.
//
// The renderer is a black box: it reads a generated program file and lays
// out artifacts under a media root by a fixed convention keyed on the scene
// class name rather than the caller's output name:
//
//   - preview: <root>/images/<class>/<output>.png
//   - final:   <root>/videos/<class>/<quality folder>/<output>.mp4
//
// # Invocation
//
// [Invoker.Invoke] builds the command line from a [Request], runs it through
// a pluggable [Runner] under a wall-clock timeout, and classifies the
// outcome. Every failure is returned as an [*Error] that matches
// [ErrRenderFailure]; the [Cause] distinguishes non-zero exit, timeout,
// missing artifact, and unexpected invocation errors.
//
// # Quality
//
// [LookupProfile] maps a project quality level to the renderer's short
// quality flag and output folder label. Unknown levels fall back to the
// medium tier instead of failing.
package render
