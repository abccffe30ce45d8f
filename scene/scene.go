// Package scene assembles a project's segments into a single manim program.
//
// The generated program has a fixed shape:
//
//	from manim import *
//
//	<preamble fragments, separated by blank lines>
//
//	class GeneratedScene(Scene):
//	    def construct(self):
//	        <construct fragments, indented, separated by blank lines>
//
// The preamble block and its separating blank line are omitted when no
// preamble segment is selected. Fragments are trusted raw text: nothing is
// escaped, parsed, or sandboxed.
package scene

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/toolscene/project"
)

const (
	// ImportHeader pins the renderer's wildcard import.
	ImportHeader = "from manim import *"

	// ClassName is the scene class the renderer is asked to render.
	ClassName = "GeneratedScene"

	// BaseClass is the renderer base class the scene extends.
	BaseClass = "Scene"

	// BodyIndent is the margin applied to every non-blank construct line.
	BodyIndent = "        "

	methodHeader = "    def construct(self):"
	emptyBody    = BodyIndent + "pass"
)

// Select returns the working set for assembly. An empty segmentID selects
// every segment in order; otherwise the single matching segment is returned,
// or project.ErrSegmentNotFound when the project has no such segment.
func Select(p project.Project, segmentID string) ([]project.Segment, error) {
	if segmentID == "" {
		return p.Segments, nil
	}
	seg, ok := p.Segment(segmentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s in project %s", project.ErrSegmentNotFound, segmentID, p.ID)
	}
	return []project.Segment{seg}, nil
}

// Assemble builds the program text for the selected segments of p.
// Callers are expected to reject projects with no segments beforehand.
func Assemble(p project.Project, segmentID string) (string, error) {
	segments, err := Select(p, segmentID)
	if err != nil {
		return "", err
	}
	return Build(segments), nil
}

// Build renders segments into program text. The result always ends with a
// single trailing newline.
func Build(segments []project.Segment) string {
	var preamble, construct []string
	for _, seg := range segments {
		code := trimTrailingNewlines(seg.Code)
		switch seg.Placement {
		case project.PlacementPreamble:
			preamble = append(preamble, code)
		default:
			construct = append(construct, indent(code))
		}
	}

	blocks := []string{ImportHeader}
	if len(preamble) > 0 {
		blocks = append(blocks, strings.Join(preamble, "\n\n"))
	}

	body := emptyBody
	if len(construct) > 0 {
		body = strings.Join(construct, "\n\n")
	}
	blocks = append(blocks, classHeader()+"\n"+methodHeader+"\n"+body)

	return strings.Join(blocks, "\n\n") + "\n"
}

func classHeader() string {
	return "class " + ClassName + "(" + BaseClass + "):"
}

// indent prefixes every non-blank line with BodyIndent. Blank lines are
// emitted empty.
func indent(code string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = BodyIndent + line
	}
	return strings.Join(lines, "\n")
}

func trimTrailingNewlines(s string) string {
	return strings.TrimRight(s, "\r\n")
}
