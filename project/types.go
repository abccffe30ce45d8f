package project

import (
	"fmt"
	"time"
)

// Placement classifies where a segment's code is injected into the
// generated program.
type Placement string

const (
	// PlacementPreamble places code at module level, before the scene class.
	PlacementPreamble Placement = "preamble"

	// PlacementConstruct places code inside the scene's construct method.
	PlacementConstruct Placement = "construct"
)

// Valid reports whether p is one of the recognized placement tags.
func (p Placement) Valid() bool {
	return p == PlacementPreamble || p == PlacementConstruct
}

// ParsePlacement converts a raw tag into a Placement.
// Returns ErrInvalidPlacement for anything other than "preamble" or "construct".
func ParsePlacement(s string) (Placement, error) {
	p := Placement(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (want %q or %q)",
			ErrInvalidPlacement, s, PlacementPreamble, PlacementConstruct)
	}
	return p, nil
}

// Quality is the logical rendering fidelity tier of a project.
type Quality string

const (
	LowQuality    Quality = "low_quality"
	MediumQuality Quality = "medium_quality"
	HighQuality   Quality = "high_quality"
	FourKQuality  Quality = "fourk_quality"
)

// DefaultQuality is applied when a project is created without a quality.
const DefaultQuality = MediumQuality

// Qualities lists the recognized quality levels from lowest to highest.
func Qualities() []Quality {
	return []Quality{LowQuality, MediumQuality, HighQuality, FourKQuality}
}

// Valid reports whether q is one of the recognized quality levels.
func (q Quality) Valid() bool {
	switch q {
	case LowQuality, MediumQuality, HighQuality, FourKQuality:
		return true
	}
	return false
}

// ParseQuality converts a raw level into a Quality.
// An empty string yields DefaultQuality; unknown values return ErrInvalidQuality.
func ParseQuality(s string) (Quality, error) {
	if s == "" {
		return DefaultQuality, nil
	}
	q := Quality(s)
	if !q.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuality, s)
	}
	return q, nil
}

// Segment is a single, independently editable fragment of scene code.
type Segment struct {
	// ID is generator-assigned and unique within the process lifetime.
	ID string `json:"id"`

	// Description is free text supplied by the caller.
	Description string `json:"description"`

	// Code is the raw fragment. It is never escaped or syntax-checked.
	Code string `json:"code"`

	// Placement decides where Code lands in the generated program.
	Placement Placement `json:"placement"`
}

// Project is a named, ordered collection of segments plus render settings.
type Project struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Quality Quality `json:"quality"`

	// BackgroundColor is captured and echoed back but not consumed by
	// assembly or rendering.
	BackgroundColor *string `json:"background_color,omitempty"`

	// Segments is in insertion order, which is the program's statement order.
	Segments []Segment `json:"segments"`

	CreatedAt time.Time `json:"created_at"`
}

// Options controls identity and clock sources for new projects.
type Options struct {
	// IDs generates project and segment identities.
	// Default: RandomIDs.
	IDs IDGenerator

	// Now returns the creation timestamp.
	// Default: time.Now.
	Now func() time.Time
}

func (o *Options) applyDefaults() {
	if o.IDs == nil {
		o.IDs = RandomIDs
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// New creates a project with no segments. An empty quality yields
// DefaultQuality; the quality is not otherwise validated here.
func New(name string, quality Quality, backgroundColor *string, opts Options) Project {
	opts.applyDefaults()
	if quality == "" {
		quality = DefaultQuality
	}
	var bg *string
	if backgroundColor != nil {
		c := *backgroundColor
		bg = &c
	}
	return Project{
		ID:              opts.IDs(KindProject),
		Name:            name,
		Quality:         quality,
		BackgroundColor: bg,
		Segments:        []Segment{},
		CreatedAt:       opts.Now(),
	}
}

// AddSegment appends a new segment and returns it.
func (p *Project) AddSegment(ids IDGenerator, code, description string, placement Placement) Segment {
	if ids == nil {
		ids = RandomIDs
	}
	id := ids(KindSegment)
	for p.hasSegment(id) {
		id = ids(KindSegment)
	}
	seg := Segment{
		ID:          id,
		Description: description,
		Code:        code,
		Placement:   placement,
	}
	p.Segments = append(p.Segments, seg)
	return seg
}

// Segment returns the segment with the given ID.
func (p *Project) Segment(id string) (Segment, bool) {
	for _, s := range p.Segments {
		if s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}

func (p *Project) hasSegment(id string) bool {
	_, ok := p.Segment(id)
	return ok
}

// EditSegment replaces a segment's code in place, and its description when
// description is non-nil. ID and placement are unchanged.
func (p *Project) EditSegment(id, code string, description *string) error {
	for i := range p.Segments {
		if p.Segments[i].ID != id {
			continue
		}
		p.Segments[i].Code = code
		if description != nil {
			p.Segments[i].Description = *description
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSegmentNotFound, id)
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	out := p
	if p.BackgroundColor != nil {
		c := *p.BackgroundColor
		out.BackgroundColor = &c
	}
	out.Segments = append([]Segment(nil), p.Segments...)
	if out.Segments == nil {
		out.Segments = []Segment{}
	}
	return out
}
