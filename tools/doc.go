// Package tools implements the manim tool surface: project creation, segment
// editing, program preview and final rendering.
//
// Service holds the orchestration logic and returns typed errors. Register
// installs the tools on a local backend; at that boundary every error is
// converted into a flat {"error": "..."} mapping so callers discriminate by
// key presence rather than by a separate failure channel.
package tools
