package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/polyglot/internal/lang"
	"github.com/csheth/polyglot/internal/pdfdoc"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Service    Service
	Logger     *slog.Logger
	SourceLang lang.Code
	TargetLang lang.Code
	DarkMode   bool
	// PDFDir is where the file picker starts browsing.
	PDFDir string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !config.SourceLang.Supported() {
		config.SourceLang = lang.English
	}
	if !config.TargetLang.Supported() {
		config.TargetLang = lang.French
	}
	if config.PDFDir == "" {
		config.PDFDir = "."
	}

	editor := textarea.New()
	editor.Placeholder = editorHint
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.Focus()

	picker := filepicker.New()
	picker.AllowedTypes = []string{pdfdoc.Extension}
	picker.CurrentDirectory = config.PDFDir
	picker.AutoHeight = false
	picker.KeyMap.Back.SetKeys("h", "backspace", "left")

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.KeyMap = viewport.KeyMap{}

	m := &model{
		config:  config,
		keys:    defaultKeyMap(),
		help:    help.New(),
		editor:  editor,
		picker:  picker,
		spinner: spin,
		results: vp,
		layout:  newPageLayout(),
		jobs:    newJobBus(config.Logger),
		active:  map[string]jobSnapshot{},
		session: session{
			sourceLang: config.SourceLang,
			targetLang: config.TargetLang,
			dark:       config.DarkMode,
		},
		infoMessage: "Type or paste text, then press ctrl+t to translate.",
	}
	m.theme = newTheme(m.session.dark)
	m.applyLayout()
	return m
}

type model struct {
	config  Config
	keys    keyMap
	help    help.Model
	editor  textarea.Model
	picker  filepicker.Model
	spinner spinner.Model
	results viewport.Model
	layout  pageLayout
	theme   theme
	jobs    *jobBus

	session session
	pending [opCount]pendingCall
	seq     uint64
	active  map[string]jobSnapshot

	pickerOpen   bool
	helpVisible  bool
	infoMessage  string
	errorMessage string
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

// Update settles the layout after every message since most of them change
// what the fixed parts of the page need.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if _, ticking := msg.(spinner.TickMsg); !ticking {
		m.applyLayout()
	}
	return m, cmd
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		return nil
	case spinner.TickMsg:
		if m.session.busyCount() == 0 {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case jobSignalMsg:
		m.active[msg.Snapshot.ID] = msg.Snapshot
		return nil
	case jobResultEnvelope:
		delete(m.active, msg.Snapshot.ID)
		if msg.Payload == nil {
			return nil
		}
		return m.update(msg.Payload)
	case operationResultMsg:
		m.settle(msg)
		return nil
	case documentInspectedMsg:
		m.selectDocument(msg)
		return nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blinks and directory listings belong to the child components.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	m.picker, cmd = m.picker.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.cancelAll()
		return tea.Quit
	}
	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Translate):
		return m.dispatch(opTranslate)
	case key.Matches(msg, m.keys.Summarize):
		return m.dispatch(opSummarizeText)
	case key.Matches(msg, m.keys.SummarizePDF):
		return m.dispatch(opSummarizePDF)
	case key.Matches(msg, m.keys.OpenPicker):
		return m.openPicker()
	case key.Matches(msg, m.keys.SourceLang):
		m.cycleSource()
		return nil
	case key.Matches(msg, m.keys.TargetLang):
		m.cycleTarget()
		return nil
	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.cancelPending()
		return nil
	case key.Matches(msg, m.keys.ScrollUp):
		m.results.HalfViewUp()
		return nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.results.HalfViewDown()
		return nil
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ClosePicker) {
		m.closePicker()
		m.infoMessage = "PDF selection unchanged."
		return nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		return tea.Batch(cmd, m.pickFile(path))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		// The picker filter is case-sensitive; "SCAN.PDF" lands here.
		if pdfdoc.HasExtension(path) {
			return tea.Batch(cmd, m.pickFile(path))
		}
		m.errorMessage = fmt.Sprintf("%s is not a %s file.", path, pdfdoc.Extension)
		return cmd
	}
	return cmd
}

// dispatch moves op from Idle to Pending. A second trigger while pending is
// ignored so at most one request per operation is in flight.
func (m *model) dispatch(op operation) tea.Cmd {
	if m.session.busy[op] {
		m.infoMessage = fmt.Sprintf("%s is already running.", op.label())
		return nil
	}
	if m.config.Service == nil {
		m.errorMessage = "No translation service configured."
		return nil
	}

	var runner jobRunner
	m.seq++
	seq := m.seq
	switch op {
	case opTranslate:
		runner = translateJob(m.config.Service, seq, m.editor.Value(), m.session.sourceLang, m.session.targetLang)
	case opSummarizeText:
		runner = summarizeTextJob(m.config.Service, seq, m.editor.Value())
	case opSummarizePDF:
		path := ""
		if m.session.document != nil {
			path = m.session.document.Path
		}
		runner = summarizePDFJob(m.config.Service, seq, path)
	default:
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.pending[op] = pendingCall{seq: seq, cancel: cancel, startedAt: time.Now()}
	m.session.busy[op] = true
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("%s request sent.", op.label())
	return tea.Batch(m.spinner.Tick, m.jobs.Start(ctx, op, runner))
}

// settle moves op back to Idle. Results from superseded or canceled
// requests are dropped without touching state.
func (m *model) settle(msg operationResultMsg) {
	call := m.pending[msg.op]
	if call.seq == 0 || call.seq != msg.seq {
		m.config.Logger.Debug("dropping stale result", "operation", msg.op.String(), "seq", msg.seq)
		return
	}
	if call.cancel != nil {
		call.cancel()
	}
	m.pending[msg.op] = pendingCall{}
	m.session.busy[msg.op] = false

	if msg.err != nil {
		m.config.Logger.Error("request failed",
			"operation", msg.op.String(),
			"elapsed", time.Since(call.startedAt),
			"err", msg.err,
		)
		m.errorMessage = fmt.Sprintf("%s failed: %v", msg.op.label(), msg.err)
		m.infoMessage = fmt.Sprintf("Press %s to try again.", m.keys.trigger(msg.op).Help().Key)
		return
	}
	m.session.setResult(msg.op, msg.result)
	if msg.op == opTranslate {
		m.session.translationLang = msg.lang
	}
	m.infoMessage = fmt.Sprintf("%s ready.", strings.TrimSuffix(msg.op.resultTitle(), ":"))
	m.refreshResults()
}

// cancelPending aborts every in-flight request and returns them to Idle.
func (m *model) cancelPending() {
	canceled := m.cancelAll()
	if canceled == 0 {
		m.infoMessage = "Nothing to cancel."
		return
	}
	m.infoMessage = fmt.Sprintf("Canceled %d request(s).", canceled)
}

func (m *model) cancelAll() int {
	canceled := 0
	for _, op := range operations {
		call := m.pending[op]
		if call.seq == 0 {
			continue
		}
		if call.cancel != nil {
			call.cancel()
		}
		m.pending[op] = pendingCall{}
		m.session.busy[op] = false
		canceled++
	}
	return canceled
}

func (m *model) cycleSource() {
	m.session.sourceLang = m.session.sourceLang.Next()
	m.infoMessage = fmt.Sprintf("Translating from %s.", m.session.sourceLang.Name())
}

func (m *model) cycleTarget() {
	m.session.targetLang = m.session.targetLang.Next()
	m.infoMessage = fmt.Sprintf("Translating to %s.", m.session.targetLang.Name())
}

func (m *model) toggleTheme() {
	m.session.dark = !m.session.dark
	m.theme = newTheme(m.session.dark)
	m.refreshResults()
}

func (m *model) openPicker() tea.Cmd {
	m.pickerOpen = true
	m.editor.Blur()
	m.errorMessage = ""
	m.infoMessage = "Choose a PDF with enter, esc to close."
	return m.picker.Init()
}

func (m *model) pickFile(path string) tea.Cmd {
	m.closePicker()
	m.infoMessage = "Reading PDF…"
	return inspectDocumentCmd(path)
}

func (m *model) closePicker() {
	m.pickerOpen = false
	m.editor.Focus()
}

// selectDocument keeps the file even when it cannot be parsed; the picker's
// extension filter is the only client-side check.
func (m *model) selectDocument(msg documentInspectedMsg) {
	if msg.err != nil && !errors.Is(msg.err, pdfdoc.ErrUnreadable) {
		m.config.Logger.Error("pdf selection failed", "path", msg.path, "err", msg.err)
		m.errorMessage = fmt.Sprintf("Could not use %s: %v", msg.path, msg.err)
		return
	}
	if msg.err != nil {
		m.config.Logger.Warn("pdf not parsable", "path", msg.path, "err", msg.err)
	}
	doc := msg.doc
	m.session.document = &doc
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Selected %s. Press ctrl+p to summarize.", doc.Name)
}

// applyLayout measures the rendered chrome and controls, then sizes the
// editor, picker and results to whatever rows remain.
func (m *model) applyLayout() {
	m.help.Width = m.layout.innerWidth()
	chrome := lipgloss.Height(m.page("")) - 1
	controls := editorBorder + lipgloss.Height(m.controlsView())
	m.layout.Fit(chrome, controls)

	m.editor.SetWidth(m.layout.editorWidth - editorBorder)
	m.editor.SetHeight(m.layout.editorHeight)
	m.picker.Height = m.layout.pickerHeight
	m.results.Width = m.layout.resultsWidth
	m.results.Height = m.layout.resultsHeight
	m.refreshResults()
}
