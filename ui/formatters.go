package ui

import (
	"fmt"
	"strings"

	"github.com/acrmon/acrmon/domain"
)

// FormatDuration converts seconds to MM:SS format
func FormatDuration(seconds int) string {
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatArtists joins artist names for a single table cell
func FormatArtists(artists []string) string {
	if len(artists) == 0 {
		return "-"
	}
	return strings.Join(artists, ", ")
}

// FormatScore renders a match score as a percentage
func FormatScore(score int) string {
	return fmt.Sprintf("%d%%", score)
}

// FormatTrackInfo creates the detail display for the selected recognition
func FormatTrackInfo(result domain.Result, index int) string {
	track, ok := result.Best()
	if !ok {
		return fmt.Sprintf(`
[white]Result %d:
[yellow]no result

[gray]%s
[darkgray]The monitor detected nothing in this window.`,
			index+1, result.Timestamp)
	}

	label := track.Label
	if label == "" {
		label = "unknown"
	}
	release := track.ReleaseDate
	if release == "" {
		release = "unknown"
	}

	return fmt.Sprintf(`
[white]Result %d:
[lightgreen]%s

[darkgray][heard] %s [darkgray][score] %s
[darkgray][label] %s [darkgray][released] %s

[gray]Artist: [white]%s
[gray]Album:  [white]%s
[gray]ACRID:  [white]%s
[gray]Time:   [white]%s

[darkgray] r (refresh)
[darkgray] j/k (row)
[darkgray] gg/G (nav)
[darkgray] q/ESC (quit)`,
		index+1, track.Title,
		FormatDuration(track.PlayedDuration), FormatScore(track.Score),
		label, release,
		FormatArtists(track.Artists), track.Album,
		track.ACRID, result.Timestamp)
}

// CreateWelcomeMessage creates the status text shown before the first poll
func CreateWelcomeMessage(streamID string, interval string) string {
	return fmt.Sprintf(`
[lightgreen] acrmon watch
[darkgray][stream] %s
[darkgray][poll] every %s

[gray]  r (refresh now)
[gray]  j/k (row) | gg (start) | G (end)
[gray]  q or ESC to exit

[darkgray]// waiting for the first result`, streamID, interval)
}
