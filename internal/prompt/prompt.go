// Package prompt builds the final prompt text sent to the model from a
// user-editable template and the current preferences.
package prompt

import (
	"fmt"
	"strings"

	"gameday/internal/core"
)

// Placeholder tokens consumed from user-editable template strings.
const (
	TokenDate     = "{{DATE}}"
	TokenSports   = "{{SPORTS}}"
	TokenChannels = "{{CHANNELS}}"
	TokenLeagues  = "{{LEAGUES}}"
	TokenTeams    = "{{TEAMS}}"
)

// Fallback literals substituted when a preference list is empty.
const (
	LeaguesFallbackSchedule = "None specified (include all major)"
	LeaguesFallbackRecap    = "None specified"
	TeamsFallback           = "None specified"
)

// RenderSchedule substitutes every placeholder in a schedule template.
func RenderSchedule(template, date string, prefs core.Preferences) string {
	return render(template, date, prefs, LeaguesFallbackSchedule)
}

// RenderRecap substitutes every placeholder in a recap template.
func RenderRecap(template, date string, prefs core.Preferences) string {
	return render(template, date, prefs, LeaguesFallbackRecap)
}

// render replaces all occurrences of each placeholder. The original app only
// replaced the first occurrence per token; a template repeating a token is
// treated as intentional here and every occurrence gets the same value.
func render(template, date string, prefs core.Preferences, leaguesFallback string) string {
	leagues := strings.Join(prefs.FollowedLeagues, ", ")
	if leagues == "" {
		leagues = leaguesFallback
	}
	teams := strings.Join(prefs.FavoriteTeams, ", ")
	if teams == "" {
		teams = TeamsFallback
	}

	out := template
	out = strings.ReplaceAll(out, TokenDate, date)
	out = strings.ReplaceAll(out, TokenSports, strings.Join(prefs.SelectedSports, ", "))
	out = strings.ReplaceAll(out, TokenChannels, strings.Join(prefs.SelectedChannels, ", "))
	out = strings.ReplaceAll(out, TokenLeagues, leagues)
	out = strings.ReplaceAll(out, TokenTeams, teams)
	return out
}

// AppendSchemaInstruction appends the fixed output-contract block, directing
// the model to return JSON only, matching the serialized schema.
func AppendSchemaInstruction(prompt, schemaJSON string) string {
	return fmt.Sprintf("%s\n\nCRITICAL OUTPUT INSTRUCTION:\nYour response MUST be a valid JSON object adhering strictly to the following Schema:\n%s", prompt, schemaJSON)
}
