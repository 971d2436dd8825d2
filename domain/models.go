package domain

// Result is one recognition report from a stream monitor. A report with
// an empty Music slice means the monitor detected nothing in that window
// (the "no result" state of the current-results endpoint).
type Result struct {
	// Timestamp is the UTC detection time as reported by the service,
	// "2006-01-02 15:04:05" layout.
	Timestamp string
	// Status carries the service's own result code; 0 is success.
	Status Status
	// Music lists the recognized tracks, best match first.
	Music []Track
}

// Status is the service-level outcome attached to every result.
type Status struct {
	Code    int
	Message string
}

// OK reports whether the service considered the recognition successful.
func (s Status) OK() bool {
	return s.Code == 0
}

// Track is one recognized piece of music.
type Track struct {
	ACRID          string
	Title          string
	Artists        []string
	Album          string
	Label          string
	ReleaseDate    string
	Score          int
	PlayedDuration int // seconds of the track heard in the stream
}

// Best returns the highest-ranked track of a result, or false when the
// result is empty.
func (r Result) Best() (Track, bool) {
	if len(r.Music) == 0 {
		return Track{}, false
	}
	return r.Music[0], true
}
