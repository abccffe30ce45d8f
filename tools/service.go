package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jonwraymond/toolscene/project"
	"github.com/jonwraymond/toolscene/render"
	"github.com/jonwraymond/toolscene/scene"
)

// Renderer runs the external renderer. *render.Invoker satisfies it.
type Renderer interface {
	Invoke(ctx context.Context, req render.Request) (render.Result, error)
}

// Logger is the interface for logging. *zap.SugaredLogger satisfies it.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Infow(string, ...any)  {}
func (nopLogger) Warnw(string, ...any)  {}
func (nopLogger) Errorw(string, ...any) {}

// Config configures a Service.
type Config struct {
	// Store holds the projects.
	// Required.
	Store project.Store

	// Renderer runs the renderer for preview and render.
	// Required.
	Renderer Renderer

	// CodeDir is where generated program files are written. Created on
	// first write if absent.
	// Required.
	CodeDir string

	// IDs generates project and segment identities.
	// Default: project.RandomIDs
	IDs project.IDGenerator

	// Now returns project creation timestamps.
	// Default: time.Now
	Now func() time.Time

	// Logger is an optional logger for tool events.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string
	if c.Store == nil {
		missing = append(missing, "Store")
	}
	if c.Renderer == nil {
		missing = append(missing, "Renderer")
	}
	if strings.TrimSpace(c.CodeDir) == "" {
		missing = append(missing, "CodeDir")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.IDs == nil {
		c.IDs = project.RandomIDs
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
}

// Service implements the tool operations.
//
// Contract:
// - Concurrency: safe for concurrent use. Preview and render calls for the
// same project are serialized so their deterministic file names never race.
// - Errors: returned errors are *Error values matching one of ErrNotFound,
// ErrInvalidArgument, ErrInvalidState or ErrRenderFailure.
type Service struct {
	cfg Config

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a Service with the given configuration.
// Returns ErrConfiguration if the configuration is invalid.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Service{
		cfg:   cfg,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// CodeDir returns the directory program files are written to.
func (s *Service) CodeDir() string {
	return s.cfg.CodeDir
}

// CreateProject creates an empty project.
func (s *Service) CreateProject(_ context.Context, req CreateProjectRequest) (CreateProjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return CreateProjectResponse{}, invalidArgument(nil, "Project name must not be empty")
	}
	quality, err := project.ParseQuality(req.Quality)
	if err != nil {
		return CreateProjectResponse{}, invalidArgument(err,
			"Unknown quality %q (want one of %s)", req.Quality, qualityList())
	}

	p := project.New(req.Name, quality, req.BackgroundColor, project.Options{
		IDs: s.cfg.IDs,
		Now: s.cfg.Now,
	})
	if err := s.cfg.Store.Create(p); err != nil {
		return CreateProjectResponse{}, classify(err)
	}
	s.cfg.Logger.Infow("project created", "project_id", p.ID, "name", p.Name, "quality", string(p.Quality))

	return CreateProjectResponse{
		ProjectID:       p.ID,
		Name:            p.Name,
		Quality:         string(p.Quality),
		BackgroundColor: p.BackgroundColor,
		Message:         fmt.Sprintf("Project %s created successfully", p.Name),
	}, nil
}

// AddSegment appends a segment to a project.
func (s *Service) AddSegment(_ context.Context, req AddSegmentRequest) (AddSegmentResponse, error) {
	if strings.TrimSpace(req.Code) == "" {
		return AddSegmentResponse{}, invalidArgument(nil, "Segment code must not be empty")
	}
	placement := project.PlacementConstruct
	if req.Placement != "" {
		p, err := project.ParsePlacement(req.Placement)
		if err != nil {
			return AddSegmentResponse{}, invalidArgument(err,
				"Unknown placement %q (want %q or %q)", req.Placement, project.PlacementPreamble, project.PlacementConstruct)
		}
		placement = p
	}

	var seg project.Segment
	var total int
	err := s.cfg.Store.Update(req.ProjectID, func(p *project.Project) error {
		seg = p.AddSegment(s.cfg.IDs, req.Code, req.Description, placement)
		total = len(p.Segments)
		return nil
	})
	if err != nil {
		return AddSegmentResponse{}, s.lookupError(req.ProjectID, "", err)
	}
	s.cfg.Logger.Infow("segment added",
		"project_id", req.ProjectID,
		"segment_id", seg.ID,
		"placement", string(placement),
	)

	return AddSegmentResponse{
		SegmentID:     seg.ID,
		ProjectID:     req.ProjectID,
		Placement:     string(seg.Placement),
		TotalSegments: total,
		Message:       fmt.Sprintf("Segment added to %s (%d total)", req.ProjectID, total),
	}, nil
}

// EditSegment replaces a segment's code and, optionally, its description.
// A failed edit leaves the project unchanged.
func (s *Service) EditSegment(_ context.Context, req EditSegmentRequest) (EditSegmentResponse, error) {
	if strings.TrimSpace(req.Code) == "" {
		return EditSegmentResponse{}, invalidArgument(nil, "Segment code must not be empty")
	}

	var total int
	err := s.cfg.Store.Update(req.ProjectID, func(p *project.Project) error {
		if err := p.EditSegment(req.SegmentID, req.Code, req.Description); err != nil {
			return err
		}
		total = len(p.Segments)
		return nil
	})
	if err != nil {
		return EditSegmentResponse{}, s.lookupError(req.ProjectID, req.SegmentID, err)
	}
	s.cfg.Logger.Infow("segment edited", "project_id", req.ProjectID, "segment_id", req.SegmentID)

	return EditSegmentResponse{
		SegmentID:     req.SegmentID,
		ProjectID:     req.ProjectID,
		TotalSegments: total,
		Message:       fmt.Sprintf("Segment %s updated", req.SegmentID),
	}, nil
}

// Preview renders the last frame of the project, or of a single segment, to
// an image.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error) {
	out, err := s.renderProject(ctx, req.ProjectID, req.SegmentID, render.ModePreview)
	if err != nil {
		return PreviewResponse{}, err
	}
	return PreviewResponse{
		ProjectID: req.ProjectID,
		SegmentID: req.SegmentID,
		ImagePath: out.result.Path,
		CodeFile:  out.codeFile,
		Message:   "Preview generated successfully",
	}, nil
}

// Render renders the full project to a video.
func (s *Service) Render(ctx context.Context, req RenderRequest) (RenderResponse, error) {
	out, err := s.renderProject(ctx, req.ProjectID, "", render.ModeFinal)
	if err != nil {
		return RenderResponse{}, err
	}
	return RenderResponse{
		ProjectID: req.ProjectID,
		VideoPath: out.result.Path,
		CodeFile:  out.codeFile,
		Quality:   string(out.quality),
		Message:   "Video rendered successfully",
	}, nil
}

// GetProject returns a project and its segments.
func (s *Service) GetProject(_ context.Context, req GetProjectRequest) (ProjectView, error) {
	p, err := s.cfg.Store.Get(req.ProjectID)
	if err != nil {
		return ProjectView{}, s.lookupError(req.ProjectID, "", err)
	}
	view := ProjectView{
		ProjectID:       p.ID,
		Name:            p.Name,
		Quality:         string(p.Quality),
		BackgroundColor: p.BackgroundColor,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		Segments:        make([]SegmentView, 0, len(p.Segments)),
	}
	for _, seg := range p.Segments {
		view.Segments = append(view.Segments, SegmentView{
			SegmentID:   seg.ID,
			Description: seg.Description,
			Placement:   string(seg.Placement),
			Code:        seg.Code,
		})
	}
	return view, nil
}

// ListProjects summarizes every project in creation order.
func (s *Service) ListProjects(_ context.Context, _ ListProjectsRequest) (ListProjectsResponse, error) {
	projects := s.cfg.Store.List()
	resp := ListProjectsResponse{Projects: make([]ProjectSummary, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, ProjectSummary{
			ProjectID:     p.ID,
			Name:          p.Name,
			Quality:       string(p.Quality),
			TotalSegments: len(p.Segments),
		})
	}
	return resp, nil
}

// SceneCode returns the program text preview or render would write, without
// writing or rendering anything.
func (s *Service) SceneCode(_ context.Context, req SceneCodeRequest) (SceneCodeResponse, error) {
	p, code, err := s.assemble(req.ProjectID, req.SegmentID, "assemble")
	if err != nil {
		return SceneCodeResponse{}, err
	}
	return SceneCodeResponse{ProjectID: p.ID, Code: code}, nil
}

type renderOutput struct {
	result   render.Result
	codeFile string
	quality  project.Quality
}

func (s *Service) renderProject(ctx context.Context, projectID, segmentID string, mode render.Mode) (renderOutput, error) {
	action := "preview"
	if mode == render.ModeFinal {
		action = "render"
	}

	if _, err := s.cfg.Store.Get(projectID); err != nil {
		return renderOutput{}, s.lookupError(projectID, "", err)
	}
	unlock := s.lock(projectID)
	defer unlock()

	p, code, err := s.assemble(projectID, segmentID, action)
	if err != nil {
		return renderOutput{}, err
	}

	outputName := OutputName(p.ID, mode)
	codeFile, err := s.writeProgram(outputName, code)
	if err != nil {
		s.cfg.Logger.Errorw("writing program file failed", "project_id", p.ID, "error", err)
		return renderOutput{}, renderFailure(err)
	}

	result, err := s.cfg.Renderer.Invoke(ctx, render.Request{
		ProgramFile: codeFile,
		ClassName:   scene.ClassName,
		OutputName:  outputName,
		Quality:     p.Quality,
		Mode:        mode,
	})
	if err != nil {
		s.cfg.Logger.Warnw(action+" failed", "project_id", p.ID, "error", err)
		return renderOutput{}, renderFailure(err)
	}
	return renderOutput{result: result, codeFile: codeFile, quality: p.Quality}, nil
}

// assemble fetches the project and builds its program. Projects without
// segments are rejected before anything is written.
func (s *Service) assemble(projectID, segmentID, action string) (project.Project, string, error) {
	p, err := s.cfg.Store.Get(projectID)
	if err != nil {
		return project.Project{}, "", s.lookupError(projectID, "", err)
	}
	if len(p.Segments) == 0 {
		return project.Project{}, "", noSegments(p.ID, action)
	}
	code, err := scene.Assemble(p, segmentID)
	if err != nil {
		return project.Project{}, "", s.lookupError(projectID, segmentID, err)
	}
	return p, code, nil
}

func (s *Service) writeProgram(outputName, code string) (string, error) {
	if err := os.MkdirAll(s.cfg.CodeDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.cfg.CodeDir, outputName+".py")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Service) lock(projectID string) func() {
	s.mu.Lock()
	m, ok := s.locks[projectID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[projectID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *Service) lookupError(projectID, segmentID string, err error) error {
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return projectNotFound(projectID, err)
	case errors.Is(err, project.ErrSegmentNotFound):
		return segmentNotFound(projectID, segmentID, err)
	}
	return classify(err)
}

// OutputName returns the deterministic artifact and program base name for a
// project in the given mode.
func OutputName(projectID string, mode render.Mode) string {
	if mode == render.ModeFinal {
		return projectID + "_final"
	}
	return projectID + "_preview"
}

func qualityList() string {
	qs := project.Qualities()
	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = string(q)
	}
	return strings.Join(names, ", ")
}
