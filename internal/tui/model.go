// Package tui provides the Bubble Tea solving assistant.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuidle/internal/feedback"
	"github.com/verte-zerg/tuidle/internal/lexicon"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/wordlist"
)

const (
	defaultSuggestions = 8
	maxListedWords     = 300
	oracleManual       = "manual"
)

// Recorder persists finished games.
type Recorder interface {
	InsertGame(ctx context.Context, rec model.GameRecord) (int64, error)
}

// Options configures the assistant.
type Options struct {
	PreferCommon bool
	Suggestions  int
	// Recorder may be nil when history is disabled.
	Recorder Recorder
	Logger   zerolog.Logger
}

type turn struct {
	guess   string
	pattern feedback.Pattern
	lexicon int
	common  int
}

// Model implements the Bubble Tea assistant UI.
type Model struct {
	filter *lexicon.Filter
	opts   Options

	input       textinput.Model
	suggestions table.Model

	turns     []turn
	next      string
	startedAt time.Time
	won       bool
	errMsg    string

	width  int
	height int
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	tileBase     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Padding(0, 1)
	correctTile  = tileBase.Background(lipgloss.Color("#538D4E"))
	presentTile  = tileBase.Background(lipgloss.Color("#B59F3B"))
	absentTile   = tileBase.Background(lipgloss.Color("#3A3A3C"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	commonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	winStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#538D4E")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs the assistant around a loaded filter.
func NewModel(filter *lexicon.Filter, opts Options) *Model {
	if opts.Suggestions <= 0 {
		opts.Suggestions = defaultSuggestions
	}
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "arose gybbb"
	input.CharLimit = 2*filter.WordLength() + 8
	input.Focus()

	m := &Model{
		filter:    filter,
		opts:      opts,
		input:     input,
		startedAt: time.Now(),
	}
	m.suggestions = table.New(
		table.WithColumns(suggestionColumns(filter.WordLength())),
		table.WithHeight(opts.Suggestions+1),
	)
	m.suggestions.SetStyles(suggestionStyles())
	m.refreshSuggestions()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.reset()
			return m, nil
		case tea.KeyEnter:
			if m.won {
				m.reset()
				return m, nil
			}
			m.submit(m.input.Value())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{titleStyle.Render(fmt.Sprintf("tuidle · %d letters", m.filter.WordLength()))}
	for _, t := range m.turns {
		sections = append(sections, renderTiles(t.guess, t.pattern)+" "+countStyle.Render(fmt.Sprintf("%d / %d", t.lexicon, t.common)))
	}
	lex, _ := m.filter.Remaining()
	switch {
	case m.won:
		sections = append(sections, winStyle.Render(fmt.Sprintf("Solved in %d. Enter starts a new game.", len(m.turns))))
	case lex == 0:
		sections = append(sections, errorStyle.Render("No candidates left. Check the feedback or press ctrl+r."))
	default:
		sections = append(sections, "Next guess: "+titleStyle.Render(m.next))
		sections = append(sections, m.suggestions.View())
		sections = append(sections, m.renderCandidates())
	}
	sections = append(sections, m.input.View())
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n\n")
}

func (m *Model) submit(line string) {
	guess, pattern, err := parseLine(line)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if n := len(m.turns); n > 0 && m.turns[n-1].guess == guess && m.turns[n-1].pattern.Equal(pattern) {
		m.errMsg = fmt.Sprintf("%s %s is already applied", guess, pattern)
		return
	}
	if _, err := m.filter.ApplyFeedback(guess, pattern); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.input.Reset()
	lex, common := m.filter.Remaining()
	m.turns = append(m.turns, turn{guess: guess, pattern: pattern, lexicon: lex, common: common})
	if pattern.IsWin() {
		m.won = true
		m.record()
		return
	}
	m.refreshSuggestions()
}

func (m *Model) reset() {
	m.filter.Reset()
	m.turns = nil
	m.won = false
	m.errMsg = ""
	m.startedAt = time.Now()
	m.input.Reset()
	m.refreshSuggestions()
}

func (m *Model) record() {
	if m.opts.Recorder == nil {
		return
	}
	rec := model.GameRecord{
		StartedAt:  m.startedAt,
		EndedAt:    time.Now(),
		Secret:     m.turns[len(m.turns)-1].guess,
		WordLength: m.filter.WordLength(),
		Oracle:     oracleManual,
		Source:     model.SourceAssist,
		Won:        true,
		Attempts:   len(m.turns),
	}
	for _, t := range m.turns {
		rec.Turns = append(rec.Turns, model.Turn{
			Guess:            t.guess,
			Pattern:          t.pattern.String(),
			RemainingLexicon: t.lexicon,
			RemainingCommon:  t.common,
		})
	}
	if _, err := m.opts.Recorder.InsertGame(context.Background(), rec); err != nil {
		m.opts.Logger.Error().Err(err).Msg("failed to save game")
	}
}

func (m *Model) refreshSuggestions() {
	ranking, err := m.filter.Score()
	if err != nil {
		m.next = ""
		m.suggestions.SetRows(nil)
		return
	}
	if m.next, err = m.filter.Recommend(m.opts.PreferCommon); err != nil {
		m.next = ""
	}
	common := map[string]struct{}{}
	for _, w := range m.filter.CommonCandidates() {
		common[w] = struct{}{}
	}
	top := ranking.Top(m.opts.Suggestions)
	rows := make([]table.Row, 0, len(top))
	for i, s := range top {
		mark := ""
		if _, ok := common[s.Word]; ok {
			mark = "*"
		}
		rows = append(rows, table.Row{fmt.Sprintf("%d", i+1), s.Word, fmt.Sprintf("%.3f", s.Score), mark})
	}
	m.suggestions.SetRows(rows)
}

func (m *Model) renderCandidates() string {
	words := m.filter.Candidates()
	more := 0
	if len(words) > maxListedWords {
		more = len(words) - maxListedWords
		words = words[:maxListedWords]
	}
	common := map[string]struct{}{}
	for _, w := range m.filter.CommonCandidates() {
		common[w] = struct{}{}
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	out := wrapCells(buildWordCells(words, common), width)
	if more > 0 {
		out += "\n" + countStyle.Render(fmt.Sprintf("… and %d more", more))
	}
	return out
}

func (m *Model) renderFooter() string {
	lex, common := m.filter.Remaining()
	segments := []string{
		fmt.Sprintf("Turn %d", len(m.turns)+1),
		fmt.Sprintf("Lexicon %d", lex),
		fmt.Sprintf("Common %d", common),
	}
	if confirmed := m.filter.Confirmed(); len(confirmed) > 0 {
		segments = append(segments, "Confirmed "+string(confirmed))
	}
	segments = append(segments, "enter apply · ctrl+r reset · esc quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

// parseLine reads "guess pattern" or "guess:pattern".
func parseLine(line string) (string, feedback.Pattern, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ":", " "))
	if len(fields) != 2 {
		return "", nil, fmt.Errorf("expected \"guess pattern\", e.g. \"arose gybbb\"")
	}
	pattern, err := feedback.Parse(fields[1])
	if err != nil {
		return "", nil, err
	}
	return wordlist.Normalize(fields[0]), pattern, nil
}

func renderTiles(guess string, pattern feedback.Pattern) string {
	letters := []rune(strings.ToUpper(guess))
	tiles := make([]string, len(letters))
	for i, r := range letters {
		style := absentTile
		if i < len(pattern) {
			switch pattern[i] {
			case feedback.Correct:
				style = correctTile
			case feedback.Present:
				style = presentTile
			}
		}
		tiles[i] = style.Render(string(r))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func suggestionColumns(wordLength int) []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Word", Width: max(wordLength, 4) + 2},
		{Title: "Score", Width: 7},
		{Title: "Common", Width: 6},
	}
}

func suggestionStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#4A4A4A")).
		Bold(false)
	return styles
}
