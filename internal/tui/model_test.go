package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuidle/internal/feedback"
	"github.com/verte-zerg/tuidle/internal/lexicon"
	"github.com/verte-zerg/tuidle/internal/model"
)

type fakeRecorder struct {
	games []model.GameRecord
	err   error
}

func (f *fakeRecorder) InsertGame(_ context.Context, rec model.GameRecord) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.games = append(f.games, rec)
	return int64(len(f.games)), nil
}

func newTestModel(t *testing.T, rec Recorder) *Model {
	t.Helper()
	f, err := lexicon.New([]string{"alarm", "arose", "crane", "slate", "zebra"}, []string{"alarm", "crane"}, 5)
	if err != nil {
		t.Fatalf("new filter: %v", err)
	}
	return NewModel(f, Options{Recorder: rec, Logger: zerolog.Nop()})
}

func enter(m *Model, line string) {
	m.input.SetValue(line)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmitAppliesFeedbackAndRecordsWin(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, rec)

	enter(m, "arose gybbb")
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if len(m.turns) != 1 || m.turns[0].lexicon != 1 || m.turns[0].common != 1 {
		t.Fatalf("unexpected turns: %+v", m.turns)
	}
	if m.next != "alarm" {
		t.Fatalf("expected next guess alarm, got %q", m.next)
	}
	if m.input.Value() != "" {
		t.Fatalf("input must be cleared after a valid line")
	}
	if rows := m.suggestions.Rows(); len(rows) != 1 || rows[0][1] != "alarm" || rows[0][3] != "*" {
		t.Fatalf("unexpected suggestions: %v", rows)
	}

	enter(m, "ALARM:ggggg")
	if !m.won {
		t.Fatalf("expected win")
	}
	if len(rec.games) != 1 {
		t.Fatalf("expected one recorded game, got %d", len(rec.games))
	}
	game := rec.games[0]
	if game.Source != model.SourceAssist || game.Secret != "alarm" || game.Attempts != 2 || !game.Won {
		t.Fatalf("unexpected record: %+v", game)
	}
	if game.Turns[0].Pattern != "gybbb" {
		t.Fatalf("unexpected stored pattern %q", game.Turns[0].Pattern)
	}
	if !strings.Contains(m.View(), "Solved in 2") {
		t.Fatalf("view must announce the win")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.won || len(m.turns) != 0 {
		t.Fatalf("enter after a win must start a new game")
	}
}

func TestSubmitRejectsBadLines(t *testing.T) {
	m := newTestModel(t, nil)
	for _, line := range []string{"arose", "arose gyzbb", "arose gyb", "cranes ggggg"} {
		enter(m, line)
		if m.errMsg == "" {
			t.Fatalf("expected error for %q", line)
		}
		if len(m.turns) != 0 {
			t.Fatalf("bad line %q must not add a turn", line)
		}
	}
	if lex, _ := m.filter.Remaining(); lex != 5 {
		t.Fatalf("bad lines must not filter, got %d candidates", lex)
	}
}

func TestResetRestoresCandidates(t *testing.T) {
	m := newTestModel(t, nil)
	enter(m, "arose gybbb")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if len(m.turns) != 0 {
		t.Fatalf("expected no turns after reset")
	}
	if lex, common := m.filter.Remaining(); lex != 5 || common != 2 {
		t.Fatalf("unexpected remaining after reset: %d/%d", lex, common)
	}
}

func TestRecorderErrorIsNotFatal(t *testing.T) {
	m := newTestModel(t, &fakeRecorder{err: errors.New("disk full")})
	enter(m, "crane ggggg")
	if !m.won {
		t.Fatalf("expected win even when saving fails")
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, nil)
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("expected quit command for %v", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg for %v", key)
		}
	}
}

func TestParseLine(t *testing.T) {
	guess, pattern, err := parseLine("  Arose   g.y-b ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := feedback.Pattern{feedback.Correct, feedback.Absent, feedback.Present, feedback.Absent, feedback.Absent}
	if guess != "arose" || !pattern.Equal(want) {
		t.Fatalf("unexpected parse: %q %v", guess, pattern)
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel(t, nil)
	enter(m, "arose gybbb")
	out := m.renderFooter()
	for _, want := range []string{"Turn 2", "Lexicon 1", "Common 1", "Confirmed a"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}

func TestRepeatedTurnIsRejected(t *testing.T) {
	m := newTestModel(t, nil)
	enter(m, "crane bbbbb")
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	enter(m, "crane bbbbb")
	if len(m.turns) != 1 {
		t.Fatalf("repeated line must not add a turn, got %d", len(m.turns))
	}
	if !strings.Contains(m.errMsg, "already applied") {
		t.Fatalf("expected repeat error, got %q", m.errMsg)
	}
	if m.input.Value() != "crane bbbbb" {
		t.Fatalf("input must be kept after a rejected line, got %q", m.input.Value())
	}
}
