/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gameday/internal/config"
	"gameday/internal/core"
	"gameday/internal/fetch"
	"gameday/internal/llm"
	"gameday/internal/store"
	"gameday/internal/tui"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gameday",
	Short: "Gameday is an AI-powered sports schedule and recap viewer.",
	Long: `Gameday fetches daily sports TV schedules and recaps through the
Gemini API, shaped by your preferences (sports, channels, leagues, teams).

Fetched schedules are cached per day in a local SQLite store so browsing
back and forth is instant; use --refresh to force a new fetch.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gameday.yaml)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(recapCmd)
	rootCmd.AddCommand(watchlistCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(cacheCmd)

	scheduleCmd.Flags().String("date", "", "date to fetch (YYYY-MM-DD, default today)")
	scheduleCmd.Flags().Bool("refresh", false, "bypass the cache and fetch fresh data")
	scheduleCmd.Flags().Bool("json", false, "print raw JSON instead of a table")

	recapCmd.Flags().String("date", "", "date to recap (YYYY-MM-DD, default today)")
	recapCmd.Flags().Bool("json", false, "print raw JSON instead of text")

	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheClearCmd.Flags().Bool("confirm", false, "confirm cache deletion")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load configuration: %v\n", err)
	}
}

func openStore() (*store.Store, error) {
	s, err := store.NewStore(config.GetDataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}
	return s, nil
}

func loadPreferences(s *store.Store) core.Preferences {
	prefs, err := s.LoadPreferences()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load preferences, using defaults: %v\n", err)
		return core.DefaultPreferences()
	}
	return prefs
}

func resolveDate(cmd *cobra.Command) (string, error) {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		return time.Now().Format(tui.DateFormat), nil
	}
	if _, err := time.Parse(tui.DateFormat, date); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return date, nil
}

func runTUI() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return tui.Run(s, loadPreferences(s))
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the Gameday terminal interface",
	Long:  `Launch the interactive TUI to browse schedules, recaps and preferences.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Fetch the sports schedule for a date",
	Long: `Fetch the televised sports schedule for a date, serving the cached
copy when one exists. Use --refresh to force a new fetch.`,
	Run: func(cmd *cobra.Command, args []string) {
		date, err := resolveDate(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		refresh, _ := cmd.Flags().GetBool("refresh")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer s.Close()
		prefs := loadPreferences(s)

		ctx := context.Background()
		client, err := llm.NewClient(ctx, prefs)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		day, err := fetch.NewService(s, client).Schedule(ctx, date, prefs, refresh)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if asJSON {
			printJSON(day)
			return
		}
		printSchedule(s, day)
	},
}

func printSchedule(s *store.Store, day *core.CachedDay) {
	fmt.Printf("Schedule for %s (%d events)\n", day.Date, len(day.Events))
	fmt.Println(strings.Repeat("=", 40))
	if len(day.Events) == 0 {
		fmt.Println("No events found for this date.")
		return
	}
	for _, event := range day.Events {
		star := " "
		if watched, err := s.IsWatchlisted(event.ID); err == nil && watched {
			star = "★"
		}
		status := ""
		if event.Status == core.StatusLive {
			status = " [LIVE]"
		}
		fmt.Printf("%s %s  %-14s %-22s %s vs %s  (%s)%s\n",
			star, event.Time, event.Sport, event.League, event.HomeTeam, event.AwayTeam, event.Channel, status)
	}
}

var recapCmd = &cobra.Command{
	Use:   "recap",
	Short: "Generate a recap of a day's results",
	Long: `Generate a summary of a day's sports results and standings. Recaps
are always generated fresh and never cached.`,
	Run: func(cmd *cobra.Command, args []string) {
		date, err := resolveDate(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer s.Close()
		prefs := loadPreferences(s)

		ctx := context.Background()
		client, err := llm.NewClient(ctx, prefs)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		recap, err := fetch.NewService(s, client).Recap(ctx, date, prefs)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if asJSON {
			printJSON(recap)
			return
		}
		printRecap(recap, prefs.HideScores)
	},
}

func printRecap(recap core.DailyRecap, hideScores bool) {
	fmt.Printf("Recap for %s\n", recap.Date)
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println(recap.Summary)

	if len(recap.Results) > 0 {
		fmt.Println("\nResults:")
		for _, result := range recap.Results {
			if hideScores {
				fmt.Printf("  %s: %s vs %s (scores hidden)\n", result.League, result.HomeTeam, result.AwayTeam)
				continue
			}
			fmt.Printf("  %s: %s %d - %d %s (%s)\n",
				result.League, result.HomeTeam, result.HomeScore, result.AwayScore, result.AwayTeam, result.Status)
		}
	}

	if len(recap.Standings) > 0 && !hideScores {
		fmt.Println("\nStandings:")
		for _, row := range recap.Standings {
			fmt.Printf("  %2d. %-24s played %d, %d pts\n", row.Position, row.Team, row.Played, row.Points)
		}
	}
}

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "List starred events",
	Long:  `List every event on the watchlist, oldest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer s.Close()

		events, err := s.Watchlist()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if len(events) == 0 {
			fmt.Println("Watchlist is empty. Star events in the TUI with 'w'.")
			return
		}
		for _, event := range events {
			fmt.Printf("★ %s %s  %-22s %s vs %s  (%s)\n",
				event.Date, event.Time, event.League, event.HomeTeam, event.AwayTeam, event.Channel)
		}
	},
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
	Long:  `Show or change the preferences that shape schedule and recap fetches.`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer s.Close()

		prefs := loadPreferences(s)
		fmt.Printf("Model:       %s\n", prefs.Model)
		fmt.Printf("Hide scores: %v\n", prefs.HideScores)
		apiKey := "(not set, using environment)"
		if prefs.APIKey != "" {
			apiKey = "********"
		}
		fmt.Printf("API key:     %s\n", apiKey)
		fmt.Printf("Sports:      %s\n", strings.Join(prefs.SelectedSports, ", "))
		fmt.Printf("Channels:    %s\n", strings.Join(prefs.SelectedChannels, ", "))
		fmt.Printf("Leagues:     %s\n", strings.Join(prefs.FollowedLeagues, ", "))
		fmt.Printf("Teams:       %s\n", strings.Join(prefs.FavoriteTeams, ", "))
		fmt.Printf("Schedule prompt: %s\n", templateLabel(prefs.SchedulePrompt, core.DefaultSchedulePrompt))
		fmt.Printf("Recap prompt:    %s\n", templateLabel(prefs.RecapPrompt, core.DefaultRecapPrompt))
	},
}

func templateLabel(current, builtin string) string {
	if current == builtin {
		return "(default)"
	}
	return "(custom, see 'prefs set' to change or reset)"
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference",
	Long: `Change one preference. Keys:

  model            gemini model name
  hide-scores      true or false
  api-key          Gemini API key (stored locally)
  sports           comma-separated sports
  channels         comma-separated channels
  leagues          comma-separated followed leagues
  teams            comma-separated favorite teams
  schedule-prompt  schedule prompt template (empty restores the default)
  recap-prompt     recap prompt template (empty restores the default)

Templates may use the placeholders {{DATE}}, {{SPORTS}}, {{CHANNELS}},
{{LEAGUES}} and {{TEAMS}}.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer s.Close()

		prefs := loadPreferences(s)
		key, value := args[0], args[1]

		if err := applyPreference(&prefs, key, value); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := s.SavePreferences(prefs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("✅ %s updated\n", key)
	},
}

// applyPreference mutates one preference field from its CLI key. An empty
// prompt template restores the built-in default.
func applyPreference(prefs *core.Preferences, key, value string) error {
	switch key {
	case "model":
		prefs.Model = value
	case "hide-scores":
		hide, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for hide-scores, expected true or false", value)
		}
		prefs.HideScores = hide
	case "api-key":
		prefs.APIKey = value
	case "sports":
		prefs.SelectedSports = splitList(value)
	case "channels":
		prefs.SelectedChannels = splitList(value)
	case "leagues":
		prefs.FollowedLeagues = splitList(value)
	case "teams":
		prefs.FavoriteTeams = splitList(value)
	case "schedule-prompt":
		if value == "" {
			value = core.DefaultSchedulePrompt
		}
		prefs.SchedulePrompt = value
	case "recap-prompt":
		if value == "" {
			value = core.DefaultRecapPrompt
		}
		prefs.RecapPrompt = value
	default:
		return fmt.Errorf("unknown preference key %q", key)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the schedule cache",
	Long:  `Inspect or clear the per-day schedule cache.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer s.Close()

		stats, err := s.GetStats()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("Cache Statistics:")
		fmt.Println("================")
		fmt.Printf("Cached days: %d\n", stats.ScheduleDays)
		fmt.Printf("Watchlist:   %d\n", stats.WatchlistCount)
		fmt.Printf("Size:        %.2f MB\n", float64(stats.SizeBytes)/(1024*1024))
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached schedules",
	Long:  `Remove every cached day. Watchlist and preferences are kept.`,
	Run: func(cmd *cobra.Command, args []string) {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Println("This will delete all cached schedules. Use --confirm to proceed.")
			return
		}

		s, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer s.Close()

		if err := s.ClearSchedules(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("✅ Cache cleared successfully")
	},
}

func printJSON(v any) {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(blob))
}
