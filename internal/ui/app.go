// Package ui provides the Bubble Tea terminal interface for curio.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/curiobooks/curio/internal/config"
	"github.com/curiobooks/curio/internal/curation"
	"github.com/curiobooks/curio/internal/prefs"
	"github.com/curiobooks/curio/internal/reveal"
	"github.com/curiobooks/curio/internal/session"
)

// ViewMode selects between the single-shot result view and the
// conversation thread view.
type ViewMode int

const (
	ViewSingle ViewMode = iota
	ViewThread
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    curation.Recommender
	Config    config.Config
	ThemeName string
	PrefsPath string
	Overlap   session.OverlapPolicy
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    curation.Recommender
	cfg       config.Config
	prefsPath string

	// UI state
	theme     Theme
	styles    Styles
	scoreMode config.ScoreMode
	viewMode  ViewMode
	width     int
	height    int
	ready     bool

	// Widgets
	input    textinput.Model
	spin     spinner.Model
	content  viewport.Model
	markdown *glamour.TermRenderer

	// Query lifecycle
	phase  *session.PhaseController
	thread *session.Thread

	// Typewriter reveal. revealGen tags tick messages so a superseded
	// reveal's pending tick is dropped instead of advancing the new one.
	rev       *reveal.Reveal
	revealGen int
	revealFor string // assistant message ID in thread mode, "" in single
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	theme := GetTheme(themeName)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "어떤 책을 찾고 계신가요? (예: 퇴근 후 마음이 편해지는 에세이)"
	input.CharLimit = 200
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		cfg:       opts.Config,
		prefsPath: prefsPath,
		theme:     theme,
		styles:    theme.Styles(),
		scoreMode: opts.Config.ScoreMode,
		viewMode:  ViewSingle,
		input:     input,
		spin:      spin,
		phase:     session.NewPhaseController(),
		thread:    session.NewThread(opts.Overlap),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textinput.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		m.markdown = newMarkdownRenderer(msg.Width - 6)
		if !m.ready {
			m.content = viewport.New(msg.Width, m.contentHeight())
			m.ready = true
		} else {
			m.content.Width = msg.Width
			m.content.Height = m.contentHeight()
		}
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case recommendMsg:
		return m.handleRecommend(msg)

	case recommendErrMsg:
		return m.handleRecommendErr(msg)

	case revealTickMsg:
		return m.handleRevealTick(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.content.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input. Plain runes belong to the query
// input; commands live on control keys so typing is never ambiguous.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		return m.submit()

	case "esc":
		// Manual retry affordance: back to the initial phase.
		m.phase.Reset()
		m.dropReveal()
		m.input.SetValue("")
		m.refreshContent()
		return m, nil

	case "tab":
		if m.viewMode == ViewSingle {
			m.viewMode = ViewThread
		} else {
			m.viewMode = ViewSingle
		}
		m.refreshContent()
		return m, nil

	case "ctrl+s":
		m.scoreMode = config.NextScoreMode(m.scoreMode)
		m.savePrefs()
		m.refreshContent()
		return m, nil

	case "ctrl+t":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.savePrefs()
		m.refreshContent()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the query through whichever lifecycle the current view uses.
// Blank queries are a no-op in both.
func (m Model) submit() (tea.Model, tea.Cmd) {
	query := m.input.Value()

	if m.viewMode == ViewThread {
		id, err := m.thread.Submit(query)
		if err != nil {
			// Blank or busy: state unchanged.
			return m, nil
		}
		m.input.SetValue("")
		m.refreshContent()
		return m, tea.Batch(
			m.spin.Tick,
			recommendCmd(m.ctx, m.client, query, m.cfg.TopK, id),
		)
	}

	if !m.phase.Submit(query) {
		return m, nil
	}
	m.dropReveal()
	m.refreshContent()
	return m, tea.Batch(
		m.spin.Tick,
		recommendCmd(m.ctx, m.client, query, m.cfg.TopK, ""),
	)
}

func (m Model) handleRecommend(msg recommendMsg) (tea.Model, tea.Cmd) {
	if msg.id != "" {
		m.thread.Resolve(msg.id, msg.resp)
		// Reveal the text the thread actually stored, which may be the
		// default summary when the backend sent none.
		var cmd tea.Cmd
		if content := m.threadContent(msg.id); content != "" {
			cmd = m.startReveal(content, msg.id)
		}
		m.refreshContent()
		return m, cmd
	}

	m.phase.Resolve(msg.resp)
	var cmd tea.Cmd
	if m.phase.Phase() == session.PhaseResults {
		if summary := summaryOf(msg.resp); summary != "" {
			cmd = m.startReveal(summary, "")
		}
	}
	m.refreshContent()
	return m, cmd
}

func (m Model) handleRecommendErr(msg recommendErrMsg) (tea.Model, tea.Cmd) {
	if msg.id != "" {
		m.thread.Fail(msg.id, msg.err)
	} else {
		m.phase.Fail(msg.err)
	}
	m.refreshContent()
	return m, nil
}

func (m Model) handleRevealTick(msg revealTickMsg) (tea.Model, tea.Cmd) {
	// A stale tick from a superseded reveal must not advance the new one.
	if msg.gen != m.revealGen || m.rev == nil {
		return m, nil
	}
	done := m.rev.Advance()
	m.refreshContent()
	if done {
		return m, nil
	}
	return m, revealTickCmd(m.revealGen)
}

// startReveal begins a typewriter reveal, superseding any running one.
func (m *Model) startReveal(text, forID string) tea.Cmd {
	m.revealGen++
	m.rev = reveal.New(text)
	m.revealFor = forID
	if m.rev.Done() {
		return nil
	}
	return revealTickCmd(m.revealGen)
}

// dropReveal cancels the running reveal; pending ticks become stale.
func (m *Model) dropReveal() {
	m.revealGen++
	m.rev = nil
	m.revealFor = ""
}

func (m Model) loading() bool {
	return m.phase.Phase() == session.PhaseLoading || m.thread.Pending() > 0
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:     m.theme.Name,
		ScoreMode: string(m.scoreMode),
	})
}

func (m Model) contentHeight() int {
	// header + input + footer
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) threadContent(id string) string {
	for _, msg := range m.thread.Messages() {
		if msg.ID == id {
			return msg.Content
		}
	}
	return ""
}

func summaryOf(resp *curation.Response) string {
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return ""
	}
	return resp.Content
}

// Messages

type recommendMsg struct {
	id   string
	resp *curation.Response
}

type recommendErrMsg struct {
	id  string
	err error
}

type revealTickMsg struct {
	gen int
}

// Commands

// recommendCmd performs the network call off the update loop and delivers
// the outcome tagged with the placeholder ID (empty in single-shot mode)
// so a late response resolves against its own message.
func recommendCmd(ctx context.Context, client curation.Recommender, query string, topK int, id string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Recommend(ctx, curation.Request{Query: query, TopK: topK})
		if err != nil {
			return recommendErrMsg{id: id, err: err}
		}
		return recommendMsg{id: id, resp: resp}
	}
}

func revealTickCmd(gen int) tea.Cmd {
	return tea.Tick(reveal.TickInterval, func(time.Time) tea.Msg {
		return revealTickMsg{gen: gen}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
