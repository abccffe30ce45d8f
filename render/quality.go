package render

import "github.com/jonwraymond/toolscene/project"

// Profile holds the renderer-specific settings for a quality level.
type Profile struct {
	// Flag is the value passed to the renderer's -q option.
	Flag string

	// Folder is the resolution/frame-rate directory the renderer writes
	// final videos into.
	Folder string
}

var profiles = map[project.Quality]Profile{
	project.LowQuality:    {Flag: "l", Folder: "480p15"},
	project.MediumQuality: {Flag: "m", Folder: "720p30"},
	project.HighQuality:   {Flag: "h", Folder: "1080p60"},
	project.FourKQuality:  {Flag: "k", Folder: "2160p60"},
}

// LookupProfile returns the profile for q, falling back to the medium tier
// for unrecognized levels.
func LookupProfile(q project.Quality) Profile {
	if p, ok := profiles[q]; ok {
		return p
	}
	return profiles[project.MediumQuality]
}
