package prompt

import (
	"strings"
	"testing"

	"gameday/internal/core"
)

func testPrefs() core.Preferences {
	return core.Preferences{
		SelectedSports:   []string{"Basketball", "Tennis"},
		SelectedChannels: []string{"Sport 1", "Sport 2"},
		FollowedLeagues:  []string{"NBA", "Euroleague"},
		FavoriteTeams:    []string{"Hapoel Jerusalem"},
	}
}

func TestRenderScheduleSubstitutesAllTokens(t *testing.T) {
	template := "Date: {{DATE}}\nSports: {{SPORTS}}\nChannels: {{CHANNELS}}\nLeagues: {{LEAGUES}}\nTeams: {{TEAMS}}"
	got := RenderSchedule(template, "2025-06-01", testPrefs())

	want := "Date: 2025-06-01\nSports: Basketball, Tennis\nChannels: Sport 1, Sport 2\nLeagues: NBA, Euroleague\nTeams: Hapoel Jerusalem"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderLeaguesFallbacks(t *testing.T) {
	prefs := testPrefs()
	prefs.FollowedLeagues = []string{}

	if got := RenderSchedule("{{LEAGUES}}", "2025-06-01", prefs); got != LeaguesFallbackSchedule {
		t.Errorf("Expected schedule fallback %q, got %q", LeaguesFallbackSchedule, got)
	}
	if got := RenderRecap("{{LEAGUES}}", "2025-06-01", prefs); got != LeaguesFallbackRecap {
		t.Errorf("Expected recap fallback %q, got %q", LeaguesFallbackRecap, got)
	}
}

func TestRenderTeamsFallback(t *testing.T) {
	prefs := testPrefs()
	prefs.FavoriteTeams = nil

	if got := RenderSchedule("{{TEAMS}}", "2025-06-01", prefs); got != TeamsFallback {
		t.Errorf("Expected teams fallback %q, got %q", TeamsFallback, got)
	}
}

func TestRenderNonEmptyLeaguesJoinedVerbatim(t *testing.T) {
	prefs := testPrefs()
	got := RenderRecap("{{LEAGUES}}", "2025-06-01", prefs)
	if got != "NBA, Euroleague" {
		t.Errorf("Expected comma-joined leagues, got %q", got)
	}
}

func TestRenderReplacesRepeatedPlaceholders(t *testing.T) {
	got := RenderSchedule("{{DATE}} and again {{DATE}}", "2025-06-01", testPrefs())
	if got != "2025-06-01 and again 2025-06-01" {
		t.Errorf("Expected every occurrence replaced, got %q", got)
	}
}

func TestAppendSchemaInstruction(t *testing.T) {
	got := AppendSchemaInstruction("base prompt", `{"type":"object"}`)

	if !strings.HasPrefix(got, "base prompt\n\n") {
		t.Error("Expected the original prompt to lead the output")
	}
	if !strings.Contains(got, "CRITICAL OUTPUT INSTRUCTION:") {
		t.Error("Expected the fixed instruction header")
	}
	if !strings.HasSuffix(got, `{"type":"object"}`) {
		t.Error("Expected the serialized schema at the end")
	}
}

func TestDefaultTemplatesRenderClean(t *testing.T) {
	prefs := core.DefaultPreferences()
	got := RenderSchedule(prefs.SchedulePrompt, "2025-06-01", prefs)

	for _, token := range []string{TokenDate, TokenSports, TokenChannels, TokenLeagues, TokenTeams} {
		if strings.Contains(got, token) {
			t.Errorf("Expected no %s left after rendering the default template", token)
		}
	}
}
