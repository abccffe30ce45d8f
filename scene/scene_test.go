package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonwraymond/toolscene/project"
)

func seg(id, code string, placement project.Placement) project.Segment {
	return project.Segment{ID: id, Code: code, Placement: placement}
}

func demoProject(segments ...project.Segment) project.Project {
	return project.Project{ID: "proj_demo", Name: "Demo", Quality: project.DefaultQuality, Segments: segments}
}

func TestAssemble_ByteExactScenario(t *testing.T) {
	p := demoProject(
		seg("seg_1", "class Helper: pass", project.PlacementPreamble),
		seg("seg_2", "self.play(Write(x))", project.PlacementConstruct),
	)

	got, err := Assemble(p, "")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	want := "from manim import *\n" +
		"\n" +
		"class Helper: pass\n" +
		"\n" +
		"class GeneratedScene(Scene):\n" +
		"    def construct(self):\n" +
		"        self.play(Write(x))\n"
	if got != want {
		t.Errorf("Assemble() mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestAssemble_PreservesOrderAcrossPlacements(t *testing.T) {
	p := demoProject(
		seg("s1", "c1()", project.PlacementConstruct),
		seg("s2", "P1 = 1", project.PlacementPreamble),
		seg("s3", "c2()", project.PlacementConstruct),
		seg("s4", "P2 = 2", project.PlacementPreamble),
	)

	got, err := Assemble(p, "")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	want := "from manim import *\n" +
		"\n" +
		"P1 = 1\n" +
		"\n" +
		"P2 = 2\n" +
		"\n" +
		"class GeneratedScene(Scene):\n" +
		"    def construct(self):\n" +
		"        c1()\n" +
		"\n" +
		"        c2()\n"
	if got != want {
		t.Errorf("Assemble() mismatch\n got: %q\nwant: %q", got, want)
	}

	classAt := strings.Index(got, "class GeneratedScene")
	for _, pre := range []string{"P1 = 1", "P2 = 2"} {
		if i := strings.Index(got, pre); i < 0 || i > classAt {
			t.Errorf("preamble %q not before class definition", pre)
		}
	}
}

func TestAssemble_IndentsEveryNonBlankLine(t *testing.T) {
	code := "circle = Circle()\n\n    self.play(Create(circle))\n   \nself.wait()"
	p := demoProject(seg("s1", code, project.PlacementConstruct))

	got, err := Assemble(p, "")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	body := got[strings.Index(got, "    def construct(self):\n")+len("    def construct(self):\n"):]
	wantBody := "        circle = Circle()\n" +
		"\n" +
		"            self.play(Create(circle))\n" +
		"\n" +
		"        self.wait()\n"
	if body != wantBody {
		t.Errorf("body mismatch\n got: %q\nwant: %q", body, wantBody)
	}
}

func TestAssemble_PreambleIsNotIndented(t *testing.T) {
	code := "def helper():\n    return 1"
	p := demoProject(
		seg("s1", code, project.PlacementPreamble),
		seg("s2", "helper()", project.PlacementConstruct),
	)

	got, _ := Assemble(p, "")
	if !strings.Contains(got, "\n\ndef helper():\n    return 1\n\nclass ") {
		t.Errorf("preamble altered:\n%s", got)
	}
}

func TestAssemble_NoPreambleOmitsBlock(t *testing.T) {
	p := demoProject(seg("s1", "self.wait()", project.PlacementConstruct))

	got, _ := Assemble(p, "")
	want := "from manim import *\n" +
		"\n" +
		"class GeneratedScene(Scene):\n" +
		"    def construct(self):\n" +
		"        self.wait()\n"
	if got != want {
		t.Errorf("Assemble() mismatch\n got: %q\nwant: %q", got, want)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("output contains an empty preamble block: %q", got)
	}
}

func TestAssemble_NoConstructEmitsPass(t *testing.T) {
	p := demoProject(seg("s1", "X = 1", project.PlacementPreamble))

	got, _ := Assemble(p, "")
	if !strings.HasSuffix(got, "    def construct(self):\n        pass\n") {
		t.Errorf("expected pass body, got %q", got)
	}
}

func TestAssemble_SingleSegmentScope(t *testing.T) {
	a := seg("seg_a", "A = 1", project.PlacementPreamble)
	b := seg("seg_b", "self.play(FadeIn(x))", project.PlacementConstruct)
	p := demoProject(a, b)

	got, err := Assemble(p, "seg_b")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	want, _ := Assemble(demoProject(b), "")
	if got != want {
		t.Errorf("single-segment scope differs from single-segment project\n got: %q\nwant: %q", got, want)
	}
	if strings.Contains(got, "A = 1") {
		t.Errorf("unselected segment leaked into output: %q", got)
	}
}

func TestAssemble_UnknownSegment(t *testing.T) {
	p := demoProject(seg("seg_a", "x", project.PlacementConstruct))

	_, err := Assemble(p, "seg_missing")
	if !errors.Is(err, project.ErrSegmentNotFound) {
		t.Fatalf("Assemble() error = %v, want ErrSegmentNotFound", err)
	}
}

func TestAssemble_SingleTrailingNewline(t *testing.T) {
	p := demoProject(
		seg("s1", "A = 1\n\n", project.PlacementPreamble),
		seg("s2", "self.wait()\n", project.PlacementConstruct),
	)

	got, _ := Assemble(p, "")
	if !strings.HasSuffix(got, "self.wait()\n") || strings.HasSuffix(got, "\n\n") {
		t.Errorf("want exactly one trailing newline, got %q", got)
	}
	if !strings.Contains(got, "A = 1\n\nclass ") {
		t.Errorf("preamble separation wrong: %q", got)
	}
}

func TestSelect_AllSegments(t *testing.T) {
	p := demoProject(
		seg("s1", "a", project.PlacementConstruct),
		seg("s2", "b", project.PlacementPreamble),
	)
	got, err := Select(p, "")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "s1" || got[1].ID != "s2" {
		t.Errorf("Select() = %+v", got)
	}
}
