package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/toolscene/backend/local"
	"github.com/jonwraymond/toolscene/project"
)

// Tool names.
const (
	ToolCreateProject = "create_project"
	ToolAddSegment    = "add_segment"
	ToolEditSegment   = "edit_segment"
	ToolPreview       = "preview"
	ToolRender        = "render"
	ToolGetProject    = "get_project"
	ToolListProjects  = "list_projects"
	ToolSceneCode     = "scene_code"
)

// Names lists the tools in registration order.
func Names() []string {
	return []string{
		ToolCreateProject,
		ToolAddSegment,
		ToolEditSegment,
		ToolPreview,
		ToolRender,
		ToolGetProject,
		ToolListProjects,
		ToolSceneCode,
	}
}

// Register installs every tool on b, backed by svc.
func Register(b *local.Backend, svc *Service) {
	log := svc.cfg.Logger
	for _, d := range definitions() {
		def := d.def
		def.Title = title(d.name)
		def.Handler = d.bind(svc, log)
		b.RegisterHandler(d.name, def)
	}
}

// DocEntries returns catalog documentation keyed by tool name.
func DocEntries() map[string]tooldoc.DocEntry {
	out := make(map[string]tooldoc.DocEntry)
	for _, d := range definitions() {
		out[d.name] = tooldoc.DocEntry{
			Summary: d.def.Description,
			Notes:   d.notes,
			Examples: []tooldoc.ToolExample{{
				ID:          d.name + "-example",
				Title:       title(d.name),
				Description: d.exampleDoc,
				Args:        d.example,
			}},
		}
	}
	return out
}

type definition struct {
	name       string
	def        local.ToolDef
	notes      string
	exampleDoc string
	example    map[string]any
	bind       func(svc *Service, log Logger) local.HandlerFunc
}

var titleCaser = cases.Title(language.English)

// title turns a tool name like "create_project" into "Create Project".
func title(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

func qualityNames() []any {
	var out []any
	for _, q := range project.Qualities() {
		out = append(out, string(q))
	}
	return out
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		schema["required"] = req
	}
	return schema
}

func definitions() []definition {
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true}

	return []definition{
		{
			name: ToolCreateProject,
			def: local.ToolDef{
				Description: "Create a new, empty video project.",
				InputSchema: objectSchema(map[string]any{
					"name": stringProp("Human-readable project name."),
					"quality": map[string]any{
						"type":        "string",
						"description": "Rendering quality. Defaults to medium_quality.",
						"enum":        qualityNames(),
					},
					"background_color": stringProp("Background color, recorded with the project."),
				}, "name"),
				Tags: []string{"manim", "project"},
			},
			notes:      "Returns project_id, which every other tool takes.",
			exampleDoc: "Create a 720p project.",
			example:    map[string]any{"name": "Demo", "quality": string(project.MediumQuality)},
			bind: func(svc *Service, log Logger) local.HandlerFunc {
				return handle(log, ToolCreateProject, svc.CreateProject)
			},
		},
		{
			name: ToolAddSegment,
			def: local.ToolDef{
				Description: "Append a code segment to a project. Construct segments go inside the scene's construct method; preamble segments go at module level before the scene class.",
				InputSchema: objectSchema(map[string]any{
					"project_id":  stringProp("Project to extend."),
					"code":        stringProp("Raw manim code fragment."),
					"description": stringProp("Free-text description of the segment."),
					"placement": map[string]any{
						"type":        "string",
						"description": "Where the code is placed. Defaults to construct.",
						"enum":        []any{string(project.PlacementPreamble), string(project.PlacementConstruct)},
					},
				}, "project_id", "code"),
				Tags: []string{"manim", "segment"},
			},
			notes:      "Segments are assembled in insertion order. Code is not validated.",
			exampleDoc: "Write a title on screen.",
			example: map[string]any{
				"project_id": "proj_1a2b3c4d",
				"code":       "title = Text(\"Hello\")\nself.play(Write(title))",
				"placement":  string(project.PlacementConstruct),
			},
			bind: func(svc *Service, log Logger) local.HandlerFunc {
				return handle(log, ToolAddSegment, svc.AddSegment)
			},
		},
		{
			name: ToolEditSegment,
			def: local.ToolDef{
				Description: "Replace the code, and optionally the description, of an existing segment.",
				InputSchema: objectSchema(map[string]any{
					"project_id":  stringProp("Project owning the segment."),
					"segment_id":  stringProp("Segment to edit."),
					"code":        stringProp("Replacement code fragment."),
					"description": stringProp("Replacement description. Omit to keep the current one."),
				}, "project_id", "segment_id", "code"),
				Annotations: &mcp.ToolAnnotations{IdempotentHint: true},
				Tags:        []string{"manim", "segment"},
			},
			notes:      "Segment ID and placement never change.",
			exampleDoc: "Slow down an animation.",
			example: map[string]any{
				"project_id": "proj_1a2b3c4d",
				"segment_id": "seg_5e6f7a8b",
				"code":       "self.play(Write(title), run_time=2)",
			},
			bind: func(svc *Service, log Logger) local.HandlerFunc {
				return handle(log, ToolEditSegment, svc.EditSegment)
			},
		},
		{
			name: ToolPreview,
			def: local.ToolDef{
				Description: "Render the last frame of a project, or of a single segment, to a PNG image.",
				InputSchema: objectSchema(map[string]any{
					"project_id": stringProp("Project to preview."),
					"segment_id": stringProp("Preview only this segment. Omit to preview the whole project."),
				}, "project_id"),
				Tags: []string{"manim", "render", "preview"},
			},
			notes:      "Fails when the project has no segments. Returns image_path and the generated code_file.",
			exampleDoc: "Preview the whole project.",
			example:    map[string]any{"project_id": "proj_1a2b3c4d"},
			bind: func(svc *Service, log Logger) local.HandlerFunc {
				return handle(log, ToolPreview, svc.Preview)
			},
		},
		{
			name: ToolRender,
			def: local.ToolDef{
				Description: "Render the full project to an MP4 video at the project's quality.",
				InputSchema: objectSchema(map[string]any{
					"project_id": stringProp("Project to render."),
				}, "project_id"),
				Tags: []string{"manim", "render", "video"},
			},
			notes:      "Fails when the project has no segments. Rendering is bounded by the configured timeout.",
			exampleDoc: "Render the final video.",
			example:    map[string]any{"project_id": "proj_1a2b3c4d"},
			bind: func(svc *Service, log Logger) local.HandlerFunc {
				return handle(log, ToolRender, svc.Render)
			},
		},
		{
			name: ToolGetProject,
			def: local.ToolDef{
				Description: "Show a project's settings and its segments in order.",
				InputSchema: objectSchema(map[string]any{
					"project_id": stringProp("Project to show."),
				}, "project_id"),
				Annotations: readOnly,
				Tags:        []string{"manim", "project"},
			},
			exampleDoc: "Inspect a project.",
			example:    map[string]any{"project_id": "proj_1a2b3c4d"},
			bind: func(svc *Service, log Logger) local.HandlerFunc {
				return handle(log, ToolGetProject, svc.GetProject)
			},
		},
		{
			name: ToolListProjects,
			def: local.ToolDef{
				Description: "List every project with its segment count.",
				InputSchema: objectSchema(map[string]any{}),
				Annotations: readOnly,
				Tags:        []string{"manim", "project"},
			},
			exampleDoc: "List projects.",
			example:    map[string]any{},
			bind: func(svc *Service, log Logger) local.HandlerFunc {
				return handle(log, ToolListProjects, svc.ListProjects)
			},
		},
		{
			name: ToolSceneCode,
			def: local.ToolDef{
				Description: "Show the program text that preview or render would generate, without rendering.",
				InputSchema: objectSchema(map[string]any{
					"project_id": stringProp("Project to assemble."),
					"segment_id": stringProp("Assemble only this segment. Omit for the whole project."),
				}, "project_id"),
				Annotations: readOnly,
				Tags:        []string{"manim", "code"},
			},
			exampleDoc: "Show the generated program.",
			example:    map[string]any{"project_id": "proj_1a2b3c4d"},
			bind: func(svc *Service, log Logger) local.HandlerFunc {
				return handle(log, ToolSceneCode, svc.SceneCode)
			},
		},
	}
}

// handle adapts a typed service method to a local handler. Failures never
// escape as errors: they become an ErrorResponse payload.
func handle[Req, Resp any](log Logger, tool string, fn func(context.Context, Req) (Resp, error)) local.HandlerFunc {
	return func(ctx context.Context, args map[string]any) (any, error) {
		var req Req
		if err := decodeArgs(args, &req); err != nil {
			log.Warnw("tool arguments rejected", "tool", tool, "error", err)
			return NewErrorResponse(invalidArgument(err, "Invalid arguments for %s: %v", tool, err)), nil
		}
		resp, err := fn(ctx, req)
		if err != nil {
			log.Warnw("tool call failed", "tool", tool, "error", err)
			return NewErrorResponse(err), nil
		}
		return resp, nil
	}
}

func decodeArgs(args map[string]any, dst any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
