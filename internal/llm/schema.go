package llm

import (
	"encoding/json"

	"google.golang.org/genai"
)

// EventListSchema returns the response schema for schedule requests. It is
// passed to the provider's structured-output mode and serialized into the
// prompt's instruction block.
func EventListSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"events": {
				Type:        genai.TypeArray,
				Description: "A list of sports events found for the specified date.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":       {Type: genai.TypeString, Description: "A unique identifier for the event."},
						"sport":    {Type: genai.TypeString, Description: "The sport category (e.g., Football, Basketball)."},
						"league":   {Type: genai.TypeString, Description: "The specific league or tournament name."},
						"homeTeam": {Type: genai.TypeString, Description: "The name of the home team or first competitor."},
						"awayTeam": {Type: genai.TypeString, Description: "The name of the away team or second competitor."},
						"time":     {Type: genai.TypeString, Description: "The start time of the event in HH:MM format (Israel Time)."},
						"channel":  {Type: genai.TypeString, Description: "The TV channel broadcasting the event."},
						"status": {
							Type:        genai.TypeString,
							Enum:        []string{"live", "upcoming", "ended"},
							Description: "The current status relative to the request time.",
						},
					},
					Required: []string{"id", "sport", "league", "time", "channel", "homeTeam", "awayTeam", "status"},
				},
			},
		},
		Required: []string{"events"},
	}
}

// RecapSchema returns the response schema for daily recap requests.
func RecapSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {Type: genai.TypeString, Description: "A concise 2-3 sentence summary of the day's major sports news."},
			"results": {
				Type:        genai.TypeArray,
				Description: "Key match results from the day.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"league":    {Type: genai.TypeString, Description: "The league or tournament."},
						"homeTeam":  {Type: genai.TypeString, Description: "Home team name."},
						"awayTeam":  {Type: genai.TypeString, Description: "Away team name."},
						"homeScore": {Type: genai.TypeInteger, Description: "Home team score."},
						"awayScore": {Type: genai.TypeInteger, Description: "Away team score."},
						"status":    {Type: genai.TypeString, Description: "Match status (e.g., 'FT', 'AET')."},
					},
					Required: []string{"league", "homeTeam", "awayTeam", "homeScore", "awayScore", "status"},
				},
			},
			"standings": {
				Type:        genai.TypeArray,
				Description: "Snapshot of top standings for a major league.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"position": {Type: genai.TypeInteger, Description: "Rank position."},
						"team":     {Type: genai.TypeString, Description: "Team name."},
						"played":   {Type: genai.TypeInteger, Description: "Matches played."},
						"points":   {Type: genai.TypeInteger, Description: "Total points."},
					},
					Required: []string{"position", "team", "played", "points"},
				},
			},
		},
		Required: []string{"summary", "results", "standings"},
	}
}

// marshalSchema serializes a schema for inclusion in the prompt text.
func marshalSchema(schema *genai.Schema) string {
	blob, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(blob)
}
