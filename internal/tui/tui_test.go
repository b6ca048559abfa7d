package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gameday/internal/core"
)

func newTestModel() Model {
	m := NewModel(nil, core.DefaultPreferences())
	m.date = "2025-06-01"
	m.fetchSchedule = func(ctx context.Context, date string, prefs core.Preferences, refresh bool) (*core.CachedDay, error) {
		return &core.CachedDay{Date: date}, nil
	}
	m.fetchRecap = func(ctx context.Context, date string, prefs core.Preferences) (core.DailyRecap, error) {
		return core.DailyRecap{Date: date}, nil
	}
	return m
}

func asModel(t *testing.T, tm tea.Model) Model {
	t.Helper()
	m, ok := tm.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", tm)
	}
	return m
}

func TestStaleScheduleResultDiscarded(t *testing.T) {
	m := newTestModel()
	m, _ = m.startScheduleFetch(false)
	firstSeq := m.seq
	m, _ = m.startScheduleFetch(false)

	// The older request resolves after the newer one was issued.
	stale := &core.CachedDay{Date: "2025-05-31"}
	next, _ := m.Update(scheduleLoadedMsg{seq: firstSeq, day: stale})
	m = asModel(t, next)

	if m.day != nil {
		t.Errorf("Expected stale result discarded, got %v", m.day)
	}
	if !m.loading {
		t.Error("Expected still loading while the newer request is in flight")
	}

	fresh := &core.CachedDay{Date: "2025-06-01"}
	next, _ = m.Update(scheduleLoadedMsg{seq: m.seq, day: fresh})
	m = asModel(t, next)

	if m.day == nil || m.day.Date != "2025-06-01" {
		t.Errorf("Expected the current request's result applied, got %v", m.day)
	}
	if m.loading {
		t.Error("Expected loading cleared after the current result lands")
	}
}

func TestStaleErrorDoesNotClobberFreshResult(t *testing.T) {
	m := newTestModel()
	m, _ = m.startScheduleFetch(false)
	firstSeq := m.seq
	m, _ = m.startScheduleFetch(false)

	next, _ := m.Update(scheduleLoadedMsg{seq: m.seq, day: &core.CachedDay{Date: "2025-06-01"}})
	m = asModel(t, next)

	next, _ = m.Update(scheduleLoadedMsg{seq: firstSeq, err: errors.New("late failure")})
	m = asModel(t, next)

	if m.errText != "" {
		t.Errorf("Expected stale error suppressed, got %q", m.errText)
	}
	if m.day == nil {
		t.Error("Expected fresh result kept")
	}
}

func TestScheduleErrorShownForCurrentRequest(t *testing.T) {
	m := newTestModel()
	m, _ = m.startScheduleFetch(false)

	next, _ := m.Update(scheduleLoadedMsg{seq: m.seq, err: errors.New("API Quota exceeded. Please try again later.")})
	m = asModel(t, next)

	if m.errText != "API Quota exceeded. Please try again later." {
		t.Errorf("Expected error surfaced, got %q", m.errText)
	}
	if m.loading {
		t.Error("Expected loading cleared on error")
	}
}

func TestDatePagingResetsDayAndIssuesNewRequest(t *testing.T) {
	m := newTestModel()
	m.day = &core.CachedDay{Date: "2025-06-01"}
	seqBefore := m.seq

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = asModel(t, next)

	if m.date != "2025-06-02" {
		t.Errorf("Expected date advanced to 2025-06-02, got %s", m.date)
	}
	if m.day != nil {
		t.Error("Expected previous day cleared on paging")
	}
	if m.seq != seqBefore+1 {
		t.Errorf("Expected a new request sequence, got %d", m.seq)
	}
	if cmd == nil {
		t.Error("Expected a fetch command issued")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = asModel(t, next)
	if m.date != "2025-06-01" {
		t.Errorf("Expected date back to 2025-06-01, got %s", m.date)
	}
}

func TestRecapViewSwitchFetchesOnce(t *testing.T) {
	m := newTestModel()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = asModel(t, next)

	if m.view != viewRecap {
		t.Errorf("Expected recap view, got %v", m.view)
	}
	if cmd == nil {
		t.Error("Expected a recap fetch issued on first switch")
	}

	next, _ = m.Update(recapLoadedMsg{seq: m.seq, recap: core.DailyRecap{Date: "2025-06-01", Summary: "done"}})
	m = asModel(t, next)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = asModel(t, next)
	if cmd != nil {
		t.Error("Expected no re-fetch when a recap is already loaded")
	}
}

func TestPreferenceTogglesUpdateModel(t *testing.T) {
	m := newTestModel()
	m.view = viewPreferences

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = asModel(t, next)
	if !m.prefs.HideScores {
		t.Error("Expected HideScores toggled on")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = asModel(t, next)
	if m.prefs.Model != core.ModelFlash {
		t.Errorf("Expected model switched to flash, got %s", m.prefs.Model)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = asModel(t, next)
	if m.prefs.Model != core.ModelPro {
		t.Errorf("Expected model switched back to pro, got %s", m.prefs.Model)
	}
}

func TestSpinnerStopsWhenIdle(t *testing.T) {
	m := newTestModel()
	m, _ = m.startScheduleFetch(false)

	next, cmd := m.Update(spinnerTickMsg{})
	m = asModel(t, next)
	if cmd == nil {
		t.Error("Expected the spinner rescheduled while a fetch is in flight")
	}
	if m.spinnerIndex != 1 {
		t.Errorf("Expected the spinner frame advanced, got %d", m.spinnerIndex)
	}

	next, _ = m.Update(scheduleLoadedMsg{seq: m.seq, day: &core.CachedDay{Date: "2025-06-01"}})
	m = asModel(t, next)

	next, cmd = m.Update(spinnerTickMsg{})
	m = asModel(t, next)
	if cmd != nil {
		t.Error("Expected no re-tick once nothing is loading")
	}
	if m.spinnerIndex != 1 {
		t.Errorf("Expected the spinner frame frozen while idle, got %d", m.spinnerIndex)
	}
}

func TestToggleString(t *testing.T) {
	list := []string{"Football", "Basketball"}

	list = toggleString(list, "Tennis")
	if len(list) != 3 || list[2] != "Tennis" {
		t.Errorf("Expected Tennis appended, got %v", list)
	}

	list = toggleString(list, "Football")
	if len(list) != 2 || list[0] != "Basketball" {
		t.Errorf("Expected Football removed, got %v", list)
	}
}
