package core

// EventStatus describes where an event stands relative to broadcast time.
type EventStatus string

const (
	StatusLive     EventStatus = "live"
	StatusUpcoming EventStatus = "upcoming"
	StatusEnded    EventStatus = "ended"
)

// Model identifiers for the two supported Gemini tiers.
const (
	// ModelPro is the default, thinking-capable tier.
	ModelPro = "gemini-3-pro-preview"
	// ModelFlash is the lighter, faster tier without a thinking budget.
	ModelFlash = "gemini-flash-lite-latest"
)

// SportEvent represents one scheduled broadcast for a given date.
type SportEvent struct {
	ID       string      `json:"id"`       // Unique identifier within a date, model-supplied
	Sport    string      `json:"sport"`    // Sport category (e.g. Football, Basketball)
	League   string      `json:"league"`   // League or tournament name
	HomeTeam string      `json:"homeTeam"` // Home team or first competitor
	AwayTeam string      `json:"awayTeam"` // Away team or second competitor
	Time     string      `json:"time"`     // Start time, HH:MM local broadcast time
	Channel  string      `json:"channel"`  // TV channel carrying the event
	Status   EventStatus `json:"status"`   // live, upcoming or ended
	Date     string      `json:"date"`     // YYYY-MM-DD, always stamped by the caller
}

// MatchResult is a single score line in a recap.
type MatchResult struct {
	League    string `json:"league"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Status    string `json:"status"` // e.g. "FT", "AET"
}

// StandingRow is one row of a league table snapshot.
type StandingRow struct {
	Position int    `json:"position"` // 1-based rank
	Team     string `json:"team"`
	Played   int    `json:"played"`
	Points   int    `json:"points"`
}

// DailyRecap is the narrative summary plus structured results and standings
// for one calendar date. Recaps are generated fresh on every fetch and are
// never cached across days.
type DailyRecap struct {
	Date      string        `json:"date"`
	Summary   string        `json:"summary"` // Never empty; a placeholder is substituted if absent
	Results   []MatchResult `json:"results"`
	Standings []StandingRow `json:"standings"`
}

// CachedDay is the persisted form of one fetched schedule.
type CachedDay struct {
	Date      string       `json:"date"`
	Events    []SportEvent `json:"events"`
	FetchedAt int64        `json:"timestamp"` // Epoch milliseconds of the fetch
}

// Preferences holds every user-configurable setting. All fields are
// populated before a request is issued; Normalize fills any gap with the
// built-in defaults.
type Preferences struct {
	SelectedSports   []string `json:"selectedSports"`
	SelectedChannels []string `json:"selectedChannels"`
	FollowedLeagues  []string `json:"followedLeagues"`
	FavoriteTeams    []string `json:"favoriteTeams"`
	HideScores       bool     `json:"hideScores"`
	Model            string   `json:"model"`            // ModelPro or ModelFlash
	APIKey           string   `json:"apiKey,omitempty"` // Per-user override; env credential used when empty
	SchedulePrompt   string   `json:"schedulePrompt"`
	RecapPrompt      string   `json:"recapPrompt"`
}

// AllSports is the catalog offered on the preferences screen.
var AllSports = []string{
	"Football (Soccer)", "Basketball", "American Football", "Formula 1", "Athletics",
	"Swimming", "Judo", "Boxing", "Handball", "Volleyball", "Gymnastics",
	"Olympic sports", "Weightlifting", "Taekwondo", "Fencing", "Archery",
	"Table Tennis", "Tennis", "Badminton", "Cross country Skiing", "Biathlon",
	"Bobsleigh", "Skeleton", "Ski Jumping", "All Other",
}

// AllChannels is the catalog of Israeli sports channels.
var AllChannels = []string{
	"Sport 5", "Sport 5 Plus", "Sport 5 Live", "Sport 5 Stars", "Sport 5 Max",
	"Sport 5 4K", "Sport 5 Gold", "Sport 1", "Sport 2", "Sport 3", "Sport 4",
	"Sport 6", "One", "One 2", "Eurosport 1", "Eurosport 2",
}

// DefaultSchedulePrompt is the built-in schedule template. Placeholders are
// substituted by the prompt package.
const DefaultSchedulePrompt = `Generate a comprehensive schedule of sports events for date: {{DATE}}.

User Preferences:
- Sports to include: {{SPORTS}}
- Channels available (Israel): {{CHANNELS}}
- Specific Leagues of interest: {{LEAGUES}}
- Favorite Teams: {{TEAMS}}

Rules:
1. Times MUST be in Israel Time (IST).
2. Only include events broadcasted on the listed channels.
3. DO NOT include scores.
4. Status should be based on the assumption that "now" is the current real time, but strictly follow the requested date context.
5. IMPORTANT: List ALL scheduled events found for the selected sports and channels. Do not limit the count.
6. Prioritize events featuring the user's favorite teams or followed leagues, but include others as well.
7. For 'id', generate a unique string (e.g., hash of teams and time).

Output Requirement:
- Return strictly a valid JSON object matching the defined schema.
- Do not add any markdown formatting or explanations outside the JSON.`

// DefaultRecapPrompt is the built-in recap template.
const DefaultRecapPrompt = `Act as a sports journalist. Provide a daily recap for {{DATE}}.

Focus on these sports: {{SPORTS}}.
Prioritize coverage for these leagues: {{LEAGUES}}.
Mention news regarding these teams if available: {{TEAMS}}.

Rules:
1. 'summary': A concise, engaging paragraph about the key headlines.
2. 'results': A list of key match results from that day (focus on favorites/followed leagues).
3. 'standings': A snapshot of the top 4 teams from a major league active on that day.

Output Requirement:
- Return strictly a valid JSON object matching the defined schema.`

// DefaultPreferences returns a fully populated preference set used on first
// run and as the fallback for any missing field.
func DefaultPreferences() Preferences {
	return Preferences{
		SelectedSports:   []string{"Football (Soccer)", "Basketball"},
		SelectedChannels: append([]string(nil), AllChannels...),
		FollowedLeagues:  []string{},
		FavoriteTeams:    []string{},
		HideScores:       false,
		Model:            ModelPro,
		SchedulePrompt:   DefaultSchedulePrompt,
		RecapPrompt:      DefaultRecapPrompt,
	}
}

// Normalize fills any unset field with its default so that a Preferences
// value is always fully populated before a request is issued.
func (p *Preferences) Normalize() {
	defaults := DefaultPreferences()
	if p.SelectedSports == nil {
		p.SelectedSports = defaults.SelectedSports
	}
	if p.SelectedChannels == nil {
		p.SelectedChannels = defaults.SelectedChannels
	}
	if p.FollowedLeagues == nil {
		p.FollowedLeagues = defaults.FollowedLeagues
	}
	if p.FavoriteTeams == nil {
		p.FavoriteTeams = defaults.FavoriteTeams
	}
	if p.Model == "" {
		p.Model = defaults.Model
	}
	if p.SchedulePrompt == "" {
		p.SchedulePrompt = defaults.SchedulePrompt
	}
	if p.RecapPrompt == "" {
		p.RecapPrompt = defaults.RecapPrompt
	}
}
