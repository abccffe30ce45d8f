package render

import (
	"path/filepath"

	"github.com/jonwraymond/toolscene/project"
)

// Mode selects between a still preview and a final video.
type Mode string

const (
	// ModePreview renders the last frame only (-s) and yields a PNG.
	ModePreview Mode = "preview"

	// ModeFinal renders and saves the full video.
	ModeFinal Mode = "final"
)

// Request describes a single renderer invocation.
type Request struct {
	// ProgramFile is the generated program the renderer reads. The caller
	// writes it before invoking.
	ProgramFile string

	// ClassName is the scene class inside ProgramFile to render.
	ClassName string

	// OutputName is the base name of the produced artifact.
	OutputName string

	// Quality selects the renderer flag and output folder.
	Quality project.Quality

	// Mode selects preview or final rendering.
	Mode Mode
}

// Args returns the renderer arguments in their fixed order:
//
//	render <program_file> <class_name> -q <flag> -o <output_name> --media_dir <output_root> [-s]
func (r Request) Args(outputRoot string) []string {
	args := []string{
		"render",
		r.ProgramFile,
		r.ClassName,
		"-q", LookupProfile(r.Quality).Flag,
		"-o", r.OutputName,
		"--media_dir", outputRoot,
	}
	if r.Mode == ModePreview {
		args = append(args, "-s")
	}
	return args
}

// ArtifactPath returns where the renderer places the artifact for r.
func ArtifactPath(outputRoot string, r Request) string {
	if r.Mode == ModePreview {
		return filepath.Join(outputRoot, "images", r.ClassName, r.OutputName+".png")
	}
	return filepath.Join(outputRoot, "videos", r.ClassName, LookupProfile(r.Quality).Folder, r.OutputName+".mp4")
}
