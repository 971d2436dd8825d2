package acrcloud

// Project types accepted by the console.
const (
	ProjectTypeAVR         = "AVR"     // audio & video recognition
	ProjectTypeBroadcast   = "BM-ACRC" // broadcast monitoring
	ProjectTypeLiveChannel = "LCD"     // live channel detection
	ProjectTypeHybrid      = "HR"      // hybrid recognition
)

// Regions the console can place projects and monitors in.
const (
	RegionSingapore = "ap-southeast-1"
	RegionIreland   = "eu-west-1"
	RegionOregon    = "us-west-2"
	RegionLocal     = "local"
)

// Audio types for projects.
const (
	AudioTypeRecorded = 1 // recorded audio
	AudioTypeLineIn   = 2 // line-in audio
)

// Monitor actions accepted by ActionMonitor.
const (
	ActionPause   = "pause"
	ActionRestart = "restart"
)

// DefaultBucketName is the bucket attached to new projects when the
// caller supplies none.
const DefaultBucketName = "ACRCloud Music"

// Bucket is a named recognition corpus (e.g. a music catalog) attached to
// a project. ID is omitted from the JSON encoding when empty, matching
// what the console expects for not-yet-created buckets.
type Bucket struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// defaultBuckets returns a fresh default bucket list. Always a new slice
// so no two requests share backing storage.
func defaultBuckets() []Bucket {
	return []Bucket{{Name: DefaultBucketName}}
}

// ProjectOptions carries the optional fields of AddProject. A nil
// *ProjectOptions selects all documented defaults; zero-valued fields of
// a non-nil struct are normalized to the same defaults.
type ProjectOptions struct {
	Type       string   // project type, default ProjectTypeBroadcast
	Buckets    []Bucket // default one bucket named DefaultBucketName
	AudioType  int      // default AudioTypeLineIn
	ExternalID string   // zero or more of "deezer", "itunes", "spotify"
	Region     string   // default RegionSingapore
}

func (o *ProjectOptions) withDefaults() ProjectOptions {
	resolved := ProjectOptions{}
	if o != nil {
		resolved = *o
	}
	if resolved.Type == "" {
		resolved.Type = ProjectTypeBroadcast
	}
	if resolved.Buckets == nil {
		resolved.Buckets = defaultBuckets()
	}
	if resolved.AudioType == 0 {
		resolved.AudioType = AudioTypeLineIn
	}
	if resolved.Region == "" {
		resolved.Region = RegionSingapore
	}
	return resolved
}

// MonitorOptions carries the optional fields of AddMonitor and
// UpdateMonitor. A nil *MonitorOptions selects the documented defaults
// (realtime on, record off, Singapore region). A non-nil struct is taken
// literally for Realtime and Record, since zero is meaningful there:
// realtime 0 requests refined results, record 0 disables recording. Use
// DefaultMonitorOptions as the starting point when overriding only some
// fields.
type MonitorOptions struct {
	Region   string // default RegionSingapore
	Realtime int    // 1: raw results within 1 min; 0: refined within 5-10 min
	Record   int    // 0 or 1
}

// DefaultMonitorOptions returns the documented monitor defaults.
func DefaultMonitorOptions() MonitorOptions {
	return MonitorOptions{Region: RegionSingapore, Realtime: 1, Record: 0}
}

func (o *MonitorOptions) withDefaults() MonitorOptions {
	if o == nil {
		return DefaultMonitorOptions()
	}
	resolved := *o
	if resolved.Region == "" {
		resolved.Region = RegionSingapore
	}
	return resolved
}
