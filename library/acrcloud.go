package library

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/acrmon/acrmon/acrcloud"
	"github.com/acrmon/acrmon/domain"
)

// ACRCloudResults adapts a raw acrcloud.StreamMonitor into the Results
// interface, decoding the monitoring API's JSON bodies into domain models.
type ACRCloudResults struct {
	monitor *acrcloud.StreamMonitor
}

// NewACRCloudResults wraps a stream monitor client.
func NewACRCloudResults(monitor *acrcloud.StreamMonitor) *ACRCloudResults {
	return &ACRCloudResults{monitor: monitor}
}

func (r *ACRCloudResults) Last(ctx context.Context) (domain.Result, error) {
	body, err := r.monitor.LastResults(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	return parseOne(body)
}

func (r *ACRCloudResults) Current(ctx context.Context) (domain.Result, error) {
	body, err := r.monitor.CurrentResults(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	return parseOne(body)
}

func (r *ACRCloudResults) Recent(ctx context.Context, limit int) ([]domain.Result, error) {
	body, err := r.monitor.MultipleLastResults(ctx, limit)
	if err != nil {
		return nil, err
	}
	return parseMany(body)
}

func (r *ACRCloudResults) Day(ctx context.Context, date string) ([]domain.Result, error) {
	body, err := r.monitor.DayResults(ctx, date)
	if err != nil {
		return nil, err
	}
	return parseMany(body)
}

func (r *ACRCloudResults) Period(ctx context.Context, begin, end string) ([]domain.Result, error) {
	body, err := r.monitor.PeriodResults(ctx, begin, end)
	if err != nil {
		return nil, err
	}
	return parseMany(body)
}

// Wire shapes of the monitoring API. Only the fields the domain models
// carry are decoded; the rest of the payload is ignored.

type wireEnvelope struct {
	Status struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	} `json:"status"`
	Metadata struct {
		TimestampUTC string      `json:"timestamp_utc"`
		Music        []wireMusic `json:"music"`
	} `json:"metadata"`
}

type wireMusic struct {
	ACRID   string `json:"acrid"`
	Title   string `json:"title"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	Label          string `json:"label"`
	ReleaseDate    string `json:"release_date"`
	Score          int    `json:"score"`
	PlayedDuration int    `json:"played_duration"`
}

func parseOne(body string) (domain.Result, error) {
	var envelope wireEnvelope
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		return domain.Result{}, fmt.Errorf("library: parsing result: %w", err)
	}
	return convertResult(envelope), nil
}

// parseMany decodes a list of results. The endpoints that can return
// several results send a JSON array, but collapse to a single object when
// only one recognition exists; both shapes are accepted.
func parseMany(body string) ([]domain.Result, error) {
	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "{") {
		result, err := parseOne(trimmed)
		if err != nil {
			return nil, err
		}
		return []domain.Result{result}, nil
	}

	var envelopes []wireEnvelope
	if err := json.Unmarshal([]byte(trimmed), &envelopes); err != nil {
		return nil, fmt.Errorf("library: parsing results: %w", err)
	}
	results := make([]domain.Result, len(envelopes))
	for i, envelope := range envelopes {
		results[i] = convertResult(envelope)
	}
	return results, nil
}

func convertResult(envelope wireEnvelope) domain.Result {
	result := domain.Result{
		Timestamp: envelope.Metadata.TimestampUTC,
		Status: domain.Status{
			Code:    envelope.Status.Code,
			Message: envelope.Status.Msg,
		},
	}
	for _, music := range envelope.Metadata.Music {
		result.Music = append(result.Music, convertTrack(music))
	}
	return result
}

func convertTrack(music wireMusic) domain.Track {
	track := domain.Track{
		ACRID:          music.ACRID,
		Title:          music.Title,
		Album:          music.Album.Name,
		Label:          music.Label,
		ReleaseDate:    music.ReleaseDate,
		Score:          music.Score,
		PlayedDuration: music.PlayedDuration,
	}
	for _, artist := range music.Artists {
		track.Artists = append(track.Artists, artist.Name)
	}
	return track
}
