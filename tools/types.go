package tools

// CreateProjectRequest is the input to create_project.
type CreateProjectRequest struct {
	Name            string  `json:"name"`
	Quality         string  `json:"quality,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
}

// CreateProjectResponse is the result of create_project.
type CreateProjectResponse struct {
	ProjectID       string  `json:"project_id"`
	Name            string  `json:"name"`
	Quality         string  `json:"quality"`
	BackgroundColor *string `json:"background_color"`
	Message         string  `json:"message"`
}

// AddSegmentRequest is the input to add_segment.
type AddSegmentRequest struct {
	ProjectID   string `json:"project_id"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Placement   string `json:"placement,omitempty"`
}

// AddSegmentResponse is the result of add_segment.
type AddSegmentResponse struct {
	SegmentID     string `json:"segment_id"`
	ProjectID     string `json:"project_id"`
	Placement     string `json:"placement"`
	TotalSegments int    `json:"total_segments"`
	Message       string `json:"message"`
}

// EditSegmentRequest is the input to edit_segment. A nil Description keeps
// the current one.
type EditSegmentRequest struct {
	ProjectID   string  `json:"project_id"`
	SegmentID   string  `json:"segment_id"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}

// EditSegmentResponse is the result of edit_segment.
type EditSegmentResponse struct {
	SegmentID     string `json:"segment_id"`
	ProjectID     string `json:"project_id"`
	TotalSegments int    `json:"total_segments"`
	Message       string `json:"message"`
}

// PreviewRequest is the input to preview. An empty SegmentID previews the
// whole project.
type PreviewRequest struct {
	ProjectID string `json:"project_id"`
	SegmentID string `json:"segment_id,omitempty"`
}

// PreviewResponse is the result of preview.
type PreviewResponse struct {
	ProjectID string `json:"project_id"`
	SegmentID string `json:"segment_id,omitempty"`
	ImagePath string `json:"image_path"`
	CodeFile  string `json:"code_file"`
	Message   string `json:"message"`
}

// RenderRequest is the input to render.
type RenderRequest struct {
	ProjectID string `json:"project_id"`
}

// RenderResponse is the result of render.
type RenderResponse struct {
	ProjectID string `json:"project_id"`
	VideoPath string `json:"video_path"`
	CodeFile  string `json:"code_file"`
	Quality   string `json:"quality"`
	Message   string `json:"message"`
}

// GetProjectRequest is the input to get_project.
type GetProjectRequest struct {
	ProjectID string `json:"project_id"`
}

// SegmentView describes one segment.
type SegmentView struct {
	SegmentID   string `json:"segment_id"`
	Description string `json:"description"`
	Placement   string `json:"placement"`
	Code        string `json:"code"`
}

// ProjectView is the result of get_project.
type ProjectView struct {
	ProjectID       string        `json:"project_id"`
	Name            string        `json:"name"`
	Quality         string        `json:"quality"`
	BackgroundColor *string       `json:"background_color"`
	CreatedAt       string        `json:"created_at"`
	Segments        []SegmentView `json:"segments"`
}

// ListProjectsRequest is the (empty) input to list_projects.
type ListProjectsRequest struct{}

// ProjectSummary is one entry of list_projects.
type ProjectSummary struct {
	ProjectID     string `json:"project_id"`
	Name          string `json:"name"`
	Quality       string `json:"quality"`
	TotalSegments int    `json:"total_segments"`
}

// ListProjectsResponse is the result of list_projects.
type ListProjectsResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

// SceneCodeRequest is the input to scene_code.
type SceneCodeRequest struct {
	ProjectID string `json:"project_id"`
	SegmentID string `json:"segment_id,omitempty"`
}

// SceneCodeResponse is the result of scene_code.
type SceneCodeResponse struct {
	ProjectID string `json:"project_id"`
	Code      string `json:"code"`
}
