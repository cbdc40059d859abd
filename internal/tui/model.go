// Package tui is the terminal rendition of the lyrics widget: a multi-line title field,
// a search button and the rendered results.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lyricsbox/lyricsbox/internal/cheatcode"
	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/formatter"
	"github.com/lyricsbox/lyricsbox/internal/search"
)

// Searcher is the part of *search.Orchestrator the widget drives.
type Searcher interface {
	Search(ctx context.Context, raw string) []data.Result
	Choose(ctx context.Context, text, original, chosen string) (string, []data.Result)
	CheatCode(ctx context.Context, text string) (string, bool)
}

var _ Searcher = (*search.Orchestrator)(nil)

// Options configures a Model.
type Options struct {
	// Query is searched immediately on start when non-empty.
	Query string
	// Pulse is how long the field stays highlighted after a cheat-code expansion.
	Pulse time.Duration
}

type searchDoneMsg struct {
	results []data.Result
	// text is set when a disambiguation rewrote the field.
	text     string
	replaced bool
}

type cheatMsg struct {
	from        string
	replacement string
	matched     bool
}

type pulseEndMsg struct {
	seq int
}

// choice is one clickable candidate under an ambiguous result.
type choice struct {
	original string
	chosen   string
}

// Model is the bubbletea model for the widget.
type Model struct {
	ctx      context.Context
	searcher Searcher
	pulse    time.Duration
	initial  string

	input    textarea.Model
	viewport viewport.Model

	busy     bool
	pulsing  bool
	pulseSeq int

	results []data.Result
	choices []choice
	focus   int // index into choices; -1 means the input field

	width  int
	height int
	ready  bool
}

// New creates the widget model.
func New(ctx context.Context, s Searcher, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "輸入歌曲名稱，每行一首…"
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(4)
	ta.Focus()

	if opts.Pulse <= 0 {
		opts.Pulse = cheatcode.PulseDuration
	}

	return Model{
		ctx:      ctx,
		searcher: s,
		pulse:    opts.Pulse,
		initial:  opts.Query,
		input:    ta,
		viewport: viewport.New(80, 16),
		focus:    -1,
	}
}

// Init starts the cursor blink and, with a launch query, the first search.
func (m Model) Init() tea.Cmd {
	if m.initial == "" {
		return textarea.Blink
	}
	return tea.Batch(textarea.Blink, func() tea.Msg { return setQueryMsg(m.initial) })
}

type setQueryMsg string

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case setQueryMsg:
		m.input.SetValue(string(msg))
		return m.startSearch()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.SetWidth(max(msg.Width-6, 20))
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-12, 3)
		m.ready = true
		m.refreshResults()
		return m, nil

	case searchDoneMsg:
		m.busy = false
		if msg.replaced {
			m.input.SetValue(msg.text)
		}
		m.setResults(msg.results)
		return m, nil

	case cheatMsg:
		// The field may have moved on while the lookup ran.
		if !msg.matched || m.input.Value() != msg.from {
			return m, nil
		}
		m.input.SetValue(msg.replacement)
		m.pulsing = true
		m.pulseSeq++
		seq := m.pulseSeq
		return m, tea.Tick(m.pulse, func(time.Time) tea.Msg { return pulseEndMsg{seq: seq} })

	case pulseEndMsg:
		if msg.seq == m.pulseSeq {
			m.pulsing = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.focus >= 0 {
			m.setFocus(-1)
			return m, nil
		}
		return m, tea.Quit
	case "ctrl+s":
		return m.startSearch()
	case "tab", "right":
		if len(m.choices) > 0 && (msg.String() == "tab" || m.focus >= 0) {
			m.setFocus((m.focus + 1) % len(m.choices))
			return m, nil
		}
	case "shift+tab", "left":
		if len(m.choices) > 0 && (msg.String() == "shift+tab" || m.focus >= 0) {
			next := m.focus - 1
			if next < 0 {
				next = len(m.choices) - 1
			}
			m.setFocus(next)
			return m, nil
		}
	case "enter":
		if m.focus >= 0 {
			return m.choose(m.choices[m.focus])
		}
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.focus >= 0 {
		m.setFocus(-1)
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return m, tea.Batch(cmd, m.lookupCheat(after))
	}
	return m, cmd
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	ctx, s, text := m.ctx, m.searcher, m.input.Value()
	return m, func() tea.Msg {
		return searchDoneMsg{results: s.Search(ctx, text)}
	}
}

func (m Model) choose(c choice) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.setFocus(-1)
	ctx, s, text := m.ctx, m.searcher, m.input.Value()
	return m, func() tea.Msg {
		updated, results := s.Choose(ctx, text, c.original, c.chosen)
		return searchDoneMsg{results: results, text: updated, replaced: true}
	}
}

func (m Model) lookupCheat(text string) tea.Cmd {
	ctx, s := m.ctx, m.searcher
	return func() tea.Msg {
		replacement, ok := s.CheatCode(ctx, text)
		return cheatMsg{from: text, replacement: replacement, matched: ok}
	}
}

func (m *Model) setResults(results []data.Result) {
	m.results = results
	m.choices = nil
	for _, r := range results {
		if r.Kind != data.ResultAmbiguous {
			continue
		}
		for _, c := range r.Candidates {
			m.choices = append(m.choices, choice{original: r.Query, chosen: c})
		}
	}
	m.focus = -1
	m.refreshResults()
	m.viewport.GotoTop()
}

func (m *Model) setFocus(i int) {
	m.focus = i
	if i >= 0 {
		m.input.Blur()
	} else {
		m.input.Focus()
	}
	m.refreshResults()
}

func (m *Model) refreshResults() {
	m.viewport.SetContent(m.renderResults())
}

// Busy reports whether a search is in flight.
func (m Model) Busy() bool { return m.busy }

// Value returns the current field content.
func (m Model) Value() string { return m.input.Value() }

// View renders the widget.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("歌詞查詢"))
	b.WriteString("\n")

	box := inputStyle
	if m.pulsing {
		box = pulseStyle
	}
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n")

	if m.busy {
		b.WriteString(buttonDisabledStyle.Render("搜尋中…"))
	} else {
		b.WriteString(buttonStyle.Render("搜尋 (ctrl+s)"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+s 搜尋 · tab 選擇候選 · enter 確認 · esc 離開"))
	return b.String()
}

func (m Model) renderResults() string {
	if len(m.results) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(m.results))
	idx := 0
	for _, r := range m.results {
		var b strings.Builder
		switch r.Kind {
		case data.ResultFound:
			b.WriteString(headingStyle.Render(formatter.Heading(r)))
			b.WriteString("\n")
			b.WriteString(lyricsStyle.Render(r.Lyrics))
		case data.ResultAmbiguous:
			b.WriteString(headingStyle.Render(formatter.Heading(r)))
			b.WriteString("\n")
			buttons := make([]string, 0, len(r.Candidates))
			for _, c := range r.Candidates {
				style := buttonStyle
				if idx == m.focus {
					style = buttonFocusedStyle
				}
				buttons = append(buttons, style.Render(c))
				idx++
			}
			b.WriteString(strings.Join(buttons, " "))
		case data.ResultError:
			b.WriteString(errorStyle.Render(formatter.Heading(r)))
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(r.Message))
		default:
			b.WriteString(headingStyle.Render(formatter.Heading(r)))
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(r.Message))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// Run starts the widget in the alternate screen and blocks until it exits.
func Run(ctx context.Context, s Searcher, opts Options) error {
	p := tea.NewProgram(New(ctx, s, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
