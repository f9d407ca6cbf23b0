package ui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rumo/internal/config"
	"rumo/internal/interview"
	"rumo/internal/logging"
	"rumo/internal/store"
)

// Copier places text somewhere the user can paste it from.
type Copier interface {
	Copy(text string) error
}

// StartFunc builds the wizard the program opens with. The options carry
// the program's callbacks and must be passed through.
type StartFunc func(opts ...interview.WizardOption) *interview.Wizard

// Options configures a Model.
type Options struct {
	Schema   *interview.Schema
	Renderer interview.Renderer

	// Start defaults to a fresh interview.New.
	Start StartFunc

	Store     store.Store // nil disables persistence
	Clipboard Copier      // nil disables copy
	Documents *DocumentRenderer
	Styles    *Styles
	UI        config.UIConfig
	Logger    *zap.Logger
	Context   context.Context
}

// =============================================================================
// MESSAGES
// =============================================================================

type persistedMsg struct {
	rec     *store.Record
	cleared bool
	err     error
}

type copiedMsg struct{ err error }

type flashDoneMsg struct{ gen int }

// events is shared with the wizard callbacks, which fire synchronously
// inside wizard calls made from Update.
type events struct {
	completed bool
	exited    bool
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model for the interview and its completion screen.
type Model struct {
	schema   *interview.Schema
	renderer interview.Renderer
	wizard   *interview.Wizard
	events   *events

	store  store.Store
	clip   Copier
	docs   *DocumentRenderer
	styles Styles
	keys   KeyMap
	logger *zap.Logger
	ctx    context.Context
	flash  time.Duration

	// Question widgets
	cursor int
	input  textinput.Model
	area   textarea.Model
	doc    viewport.Model

	width  int
	height int

	status    string
	statusErr bool
	copied    bool
	flashGen  int

	saving   bool
	dirty    bool
	quitting bool
	finished bool
	revision string
}

// New builds the model and opens the wizard through opts.Start.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Get(logging.CategoryUI)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	docs := opts.Documents
	if docs == nil {
		docs = NewDocumentRenderer(opts.UI)
	}

	m := Model{
		schema:   opts.Schema,
		renderer: opts.Renderer,
		events:   &events{},
		store:    opts.Store,
		clip:     opts.Clipboard,
		docs:     docs,
		styles:   styles,
		keys:     DefaultKeyMap(),
		logger:   logger,
		ctx:      ctx,
		flash:    opts.UI.GetCopiedFlash(),
		width:    80,
		height:   24,
		doc:      viewport.New(80, 16),
	}

	start := opts.Start
	if start == nil {
		start = func(o ...interview.WizardOption) *interview.Wizard { return interview.New(opts.Schema, o...) }
	}
	m.wizard = start(m.wizardOptions()...)
	m.syncQuestion()
	if m.wizard.Completed() {
		m.refreshDocument()
	}
	return m
}

func (m Model) wizardOptions() []interview.WizardOption {
	ev := m.events
	opts := []interview.WizardOption{
		interview.WithOnComplete(func(interview.Profile) { ev.completed = true }),
		interview.WithOnExit(func() { ev.exited = true }),
	}
	if m.renderer != nil {
		opts = append(opts, interview.WithRenderer(m.renderer))
	}
	return opts
}

// Wizard exposes the underlying navigation controller.
func (m Model) Wizard() *interview.Wizard { return m.wizard }

// Completed reports whether the interview reached its document.
func (m Model) Completed() bool { return m.wizard.Completed() }

// Finished reports whether the user chose to continue from the
// completion screen (as opposed to quitting mid-interview).
func (m Model) Finished() bool { return m.finished }

// Revision is the revision of the last successful save.
func (m Model) Revision() string { return m.revision }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if q, ok := m.wizard.Current(); ok && q.Kind == interview.KindFreeText {
		if q.Multiline {
			return textarea.Blink
		}
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		if m.wizard.Completed() {
			m.refreshDocument()
		}
		return m, nil

	case persistedMsg:
		return m.handlePersisted(msg)

	case copiedMsg:
		if msg.err != nil {
			m.setError("Copy failed: " + msg.err.Error())
			return m, nil
		}
		m.copied = true
		m.flashGen++
		gen := m.flashGen
		return m, tea.Tick(m.flash, func(time.Time) tea.Msg { return flashDoneMsg{gen: gen} })

	case flashDoneMsg:
		if msg.gen == m.flashGen {
			m.copied = false
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m.requestQuit()
		}
		if m.wizard.Completed() {
			return m.handleCompletedKey(msg)
		}
		return m.handleQuestionKey(msg)
	}
	return m, nil
}

// =============================================================================
// QUESTION INPUT
// =============================================================================

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q, ok := m.wizard.Current()
	if !ok {
		return m, nil
	}
	m.status, m.statusErr = "", false

	if key.Matches(msg, m.keys.Back) {
		m.wizard.Back()
		return m.afterNavigation(false)
	}

	switch q.Kind {
	case interview.KindSingleChoice:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1, len(q.Options))
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1, len(q.Options))
		case key.Matches(msg, m.keys.Enter):
			committed := m.wizard.Select(q.Options[m.cursor].Value)
			return m.afterNavigation(committed)
		default:
			if idx, ok := digit(msg); ok && idx < len(q.Options) {
				m.cursor = idx
				committed := m.wizard.Select(q.Options[idx].Value)
				return m.afterNavigation(committed)
			}
		}

	case interview.KindMultiChoice:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1, len(q.Options))
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1, len(q.Options))
		case key.Matches(msg, m.keys.Toggle):
			if !m.wizard.Toggle(q.Options[m.cursor].Value) {
				m.status = "You can pick " + pluralChoices(q.MaxSelect) + ". Deselect one first."
			}
		case key.Matches(msg, m.keys.Enter):
			if !m.wizard.CanAdvance() {
				m.setError("Pick exactly " + pluralChoices(q.MaxSelect) + " to continue.")
				return m, nil
			}
			committed := m.wizard.Advance()
			return m.afterNavigation(committed)
		}

	case interview.KindFreeText:
		return m.handleTextKey(q, msg)
	}
	return m, nil
}

func (m Model) handleTextKey(q interview.Question, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case q.Multiline && key.Matches(msg, m.keys.Newline):
		m.area.InsertString("\n")
		return m, nil

	case msg.Type == tea.KeyEnter && !msg.Alt && !msg.Paste:
		m.wizard.SetText(m.textValue(q))
		if !m.wizard.CanAdvance() {
			m.setError("This one needs an answer.")
			return m, nil
		}
		committed := m.wizard.Advance()
		return m.afterNavigation(committed)
	}

	var cmd tea.Cmd
	if q.Multiline {
		m.area, cmd = m.area.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	m.wizard.SetText(m.textValue(q))
	return m, cmd
}

func (m Model) textValue(q interview.Question) string {
	if q.Multiline {
		return m.area.Value()
	}
	return m.input.Value()
}

// afterNavigation reacts to wizard callbacks and syncs the widgets to the
// new position. committed means an answer was written.
func (m Model) afterNavigation(committed bool) (tea.Model, tea.Cmd) {
	ev := m.events
	if ev.exited {
		ev.exited = false
		m.logger.Debug("back on first question, leaving interview")
		return m.requestQuit()
	}

	m.syncQuestion()
	if ev.completed {
		ev.completed = false
		linear, total := m.wizard.Progress()
		m.logger.Info("interview completed", zap.Int("answered", linear), zap.Int("total", total))
		m.refreshDocument()
	}
	if committed {
		pos := m.wizard.Position()
		m.logger.Debug("answer committed", zap.Int("section", pos.Section), zap.Int("step", pos.Step))
		return m.persist()
	}
	return m, nil
}

// syncQuestion resets the widgets from the wizard's draft for the
// current question.
func (m *Model) syncQuestion() {
	m.cursor = 0
	q, ok := m.wizard.Current()
	if !ok {
		return
	}
	d := m.wizard.Draft()

	switch q.Kind {
	case interview.KindSingleChoice:
		for i, o := range q.Options {
			if o.Value == d.Choice {
				m.cursor = i
			}
		}
	case interview.KindFreeText:
		if q.Multiline {
			m.area = textarea.New()
			m.area.ShowLineNumbers = false
			m.area.CharLimit = 0
			m.area.MaxHeight = 0
			m.area.Placeholder = q.Placeholder
			m.area.SetHeight(5)
			m.area.SetWidth(m.inputWidth())
			m.area.SetValue(d.Text)
			m.area.Focus()
		} else {
			m.input = textinput.New()
			m.input.CharLimit = 0
			m.input.Placeholder = q.Placeholder
			m.input.Width = m.inputWidth()
			m.input.SetValue(d.Text)
			m.input.Focus()
		}
	}
}

func (m *Model) moveCursor(delta, n int) {
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

func (m *Model) resize() {
	w := m.inputWidth()
	m.area.SetWidth(w)
	m.input.Width = w
	m.doc.Width = m.width
	m.doc.Height = max(m.height-8, 3)
}

func (m Model) inputWidth() int {
	return max(m.width-6, 20)
}

// =============================================================================
// COMPLETION SCREEN
// =============================================================================

func (m Model) handleCompletedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		doc, _ := m.wizard.Document()
		if m.clip == nil {
			m.setError("Clipboard is disabled.")
			return m, nil
		}
		clip := m.clip
		return m, func() tea.Msg { return copiedMsg{err: clip.Copy(doc)} }

	case key.Matches(msg, m.keys.Reconfigure):
		m.logger.Info("reconfiguring: starting a fresh interview")
		m.wizard = interview.New(m.schema, m.wizardOptions()...)
		m.copied = false
		m.syncQuestion()
		m.status = "Starting over."
		return m.persist()

	case key.Matches(msg, m.keys.Continue):
		m.finished = true
		return m.requestQuit()

	case key.Matches(msg, m.keys.Close):
		return m.requestQuit()
	}

	var cmd tea.Cmd
	m.doc, cmd = m.doc.Update(msg)
	return m, cmd
}

func (m *Model) refreshDocument() {
	doc, ok := m.wizard.Document()
	if !ok {
		return
	}
	out, err := m.docs.Render(doc, m.width)
	if err != nil {
		m.logger.Warn("markdown rendering failed, showing raw document", zap.Error(err))
		out = doc
	}
	m.doc.SetContent(out)
	m.doc.GotoTop()
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// persist writes the current wizard state. At most one write is in flight;
// a request made meanwhile is folded into one follow-up write of the
// latest state.
func (m Model) persist() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	if m.saving {
		m.dirty = true
		return m, nil
	}
	m.saving = true

	st, ctx := m.store, m.ctx
	p := m.wizard.Profile()
	completed := m.wizard.Completed()
	return m, func() tea.Msg {
		if !completed && len(p) == 0 {
			return persistedMsg{cleared: true, err: st.Clear(ctx)}
		}
		rec, err := st.Save(ctx, p, completed)
		return persistedMsg{rec: rec, err: err}
	}
}

func (m Model) handlePersisted(msg persistedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	switch {
	case msg.err != nil:
		m.logger.Error("failed to persist profile", zap.Error(msg.err))
		m.setError("Could not save progress: " + msg.err.Error())
	case msg.rec != nil:
		m.revision = msg.rec.Revision
	case msg.cleared:
		m.revision = ""
	}

	if m.dirty {
		m.dirty = false
		return m.persist()
	}
	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}

// requestQuit quits once no write is pending.
func (m Model) requestQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.saving || m.dirty {
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// digit maps "1".."9" to option indices 0..8.
func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

func pluralChoices(n int) string {
	if n == 1 {
		return "1 option"
	}
	return strconv.Itoa(n) + " options"
}
