package llm

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"gameday/internal/core"
	"gameday/internal/logger"
)

// NoSummaryPlaceholder keeps DailyRecap.Summary non-empty when the model
// omits it.
const NoSummaryPlaceholder = "No summary available."

// stripCodeFences removes a leading ```json or ``` marker and a trailing
// ``` marker. The model is told not to emit markdown; this is the defense
// for when it does anyway.
func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimSpace(strings.TrimPrefix(text, "```json"))
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimSpace(strings.TrimPrefix(text, "```"))
	}
	if strings.HasSuffix(text, "```") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "```"))
	}
	return text
}

// isJSONNull reports whether a raw message is absent or an explicit null.
func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// NormalizeSchedule parses a raw schedule response and maps it into events.
// Every event's date is stamped with the requested date, never trusted from
// the model, and events missing an id get a generated one.
func NormalizeSchedule(raw, date string) ([]core.SportEvent, error) {
	text := stripCodeFences(raw)

	var payload struct {
		Events json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, malformedError(err)
	}

	if isJSONNull(payload.Events) {
		return []core.SportEvent{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload.Events, &items); err != nil {
		return nil, newError(KindInvalidShape, "Provider returned an unexpected response shape.", err)
	}

	events := make([]core.SportEvent, 0, len(items))
	for _, item := range items {
		var event core.SportEvent
		if err := json.Unmarshal(item, &event); err != nil {
			logger.Error("dropping malformed schedule event", err)
			continue
		}
		event.Date = date
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		events = append(events, event)
	}
	return events, nil
}

// NormalizeRecap parses a raw recap response. Missing fields are defaulted
// rather than rejected: the summary gets a placeholder, results and
// standings become empty sequences. A sub-field the model typed wrongly is
// dropped to its default instead of failing the whole fetch.
func NormalizeRecap(raw, date string) (core.DailyRecap, error) {
	text := stripCodeFences(raw)

	var payload struct {
		Summary   string          `json:"summary"`
		Results   json.RawMessage `json:"results"`
		Standings json.RawMessage `json:"standings"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return core.DailyRecap{}, malformedError(err)
	}

	recap := core.DailyRecap{
		Date:      date,
		Summary:   payload.Summary,
		Results:   []core.MatchResult{},
		Standings: []core.StandingRow{},
	}
	if recap.Summary == "" {
		recap.Summary = NoSummaryPlaceholder
	}

	if !isJSONNull(payload.Results) {
		var results []core.MatchResult
		if err := json.Unmarshal(payload.Results, &results); err != nil {
			logger.Error("dropping malformed recap results", err)
		} else {
			recap.Results = results
		}
	}
	if !isJSONNull(payload.Standings) {
		var standings []core.StandingRow
		if err := json.Unmarshal(payload.Standings, &standings); err != nil {
			logger.Error("dropping malformed recap standings", err)
		} else {
			recap.Standings = standings
		}
	}

	return recap, nil
}
