package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/polyglot/internal/backend"
	"github.com/csheth/polyglot/internal/lang"
	"github.com/csheth/polyglot/internal/pdfdoc"
)

func TestTranslateSuccessUpdatesOnlyTranslation(t *testing.T) {
	svc := &fakeService{translate: func(text string, src, tgt lang.Code) (string, error) {
		if text != "Hello" || src != lang.English || tgt != lang.French {
			return "", fmt.Errorf("unexpected call %q %s→%s", text, src, tgt)
		}
		return "Bonjour", nil
	}}
	m := newTestModel(t, svc)
	m.session.textSummary = "earlier summary"
	m.session.pdfSummary = "earlier pdf summary"
	m.editor.SetValue("Hello")

	cmd := m.dispatch(opTranslate)
	if cmd == nil {
		t.Fatal("dispatch should return a command")
	}
	if !m.session.busy[opTranslate] {
		t.Fatal("translate busy flag should be set immediately")
	}
	if m.session.busy[opSummarizeText] || m.session.busy[opSummarizePDF] {
		t.Fatal("other busy flags must stay clear")
	}

	drain(t, m, cmd)

	if m.session.busy[opTranslate] {
		t.Fatal("busy flag should clear after success")
	}
	if m.session.translation != "Bonjour" {
		t.Fatalf("translation = %q, want Bonjour", m.session.translation)
	}
	if m.session.textSummary != "earlier summary" || m.session.pdfSummary != "earlier pdf summary" {
		t.Fatalf("summaries changed: %q / %q", m.session.textSummary, m.session.pdfSummary)
	}
	if len(m.active) != 0 {
		t.Fatalf("job tracking not cleared: %v", m.active)
	}
	if !strings.Contains(m.View(), "Bonjour") {
		t.Fatal("view should render the translation")
	}
}

func TestSummarizeTextSuccess(t *testing.T) {
	svc := &fakeService{summarize: func(text string) (string, error) {
		return "short version", nil
	}}
	m := newTestModel(t, svc)
	m.editor.SetValue("long passage...")

	drain(t, m, m.dispatch(opSummarizeText))

	if m.session.textSummary != "short version" {
		t.Fatalf("summary = %q, want short version", m.session.textSummary)
	}
	if m.session.busy[opSummarizeText] {
		t.Fatal("busy flag should clear")
	}
}

func TestFailedCallKeepsEveryResult(t *testing.T) {
	failure := func(route string) error {
		return &backend.CallError{Route: route, StatusCode: 500, Err: errors.New("boom")}
	}
	svc := &fakeService{
		translate: func(string, lang.Code, lang.Code) (string, error) { return "", failure("translate_en_to_fr") },
		summarize: func(string) (string, error) { return "", failure("summarize") },
		summarizePDF: func(string, io.Reader) (string, error) {
			return "", failure("summarize_pdf")
		},
	}
	for _, op := range operations {
		op := op
		t.Run(op.String(), func(t *testing.T) {
			m := newTestModel(t, svc)
			m.editor.SetValue("Hello")
			m.session.document = &pdfdoc.Document{Path: writePDF(t), Name: "doc.pdf"}
			m.session.translation = "earlier translation"
			m.session.textSummary = "earlier summary"
			m.session.pdfSummary = "earlier pdf summary"

			cmd := m.dispatch(op)
			if !m.session.busy[op] {
				t.Fatal("busy flag should be set")
			}
			drain(t, m, cmd)

			if m.session.busyCount() != 0 {
				t.Fatalf("busy flags should all be clear, got %v", m.session.busy)
			}
			if m.session.translation != "earlier translation" ||
				m.session.textSummary != "earlier summary" ||
				m.session.pdfSummary != "earlier pdf summary" {
				t.Fatalf("results changed: %q / %q / %q", m.session.translation, m.session.textSummary, m.session.pdfSummary)
			}
			if !strings.HasPrefix(m.errorMessage, op.label()+" failed") || !strings.Contains(m.errorMessage, "status 500") {
				t.Fatalf("unexpected error message %q", m.errorMessage)
			}
		})
	}
}

func TestSummarizePDFWithoutSelectionFailsLikeAnyCall(t *testing.T) {
	var gotDocument io.Reader = strings.NewReader("sentinel")
	svc := &fakeService{summarizePDF: func(name string, document io.Reader) (string, error) {
		gotDocument = document
		return "", &backend.CallError{Route: "summarize_pdf", Err: errors.New("no file selected")}
	}}
	m := newTestModel(t, svc)

	drain(t, m, m.dispatch(opSummarizePDF))

	if gotDocument != nil {
		t.Fatal("no document should be attached without a selection")
	}
	if m.session.busy[opSummarizePDF] || m.session.pdfSummary != "" {
		t.Fatal("state should return to idle with no result")
	}
	if !strings.Contains(m.errorMessage, "no file selected") {
		t.Fatalf("unexpected error message %q", m.errorMessage)
	}
}

func TestSummarizePDFSendsSelectedFile(t *testing.T) {
	var gotName, gotBody string
	svc := &fakeService{summarizePDF: func(name string, document io.Reader) (string, error) {
		data, err := io.ReadAll(document)
		if err != nil {
			return "", err
		}
		gotName, gotBody = name, string(data)
		return "pdf gist", nil
	}}
	m := newTestModel(t, svc)
	path := writePDF(t)
	m.session.document = &pdfdoc.Document{Path: path, Name: "doc.pdf"}

	drain(t, m, m.dispatch(opSummarizePDF))

	if gotName != "doc.pdf" || !strings.HasPrefix(gotBody, "%PDF") {
		t.Fatalf("unexpected upload %q (%q)", gotName, gotBody)
	}
	if m.session.pdfSummary != "pdf gist" {
		t.Fatalf("pdf summary = %q", m.session.pdfSummary)
	}
}

func TestBusyFlagGatesDuplicateDispatch(t *testing.T) {
	svc := &fakeService{summarize: func(string) (string, error) { return "ok", nil }}
	m := newTestModel(t, svc)

	first := m.dispatch(opSummarizeText)
	if first == nil {
		t.Fatal("first dispatch should start a job")
	}
	if second := m.dispatch(opSummarizeText); second != nil {
		t.Fatal("second dispatch should be ignored while pending")
	}
	if third := m.dispatch(opTranslate); third == nil {
		t.Fatal("other operations stay independent")
	}
	if got := m.session.busyCount(); got != 2 {
		t.Fatalf("expected two busy operations, got %d", got)
	}

	drain(t, m, first)
	if len(svc.calls) != 1 {
		t.Fatalf("expected a single summarize call, got %v", svc.calls)
	}
}

func TestCancelDropsLateResult(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	m.session.translation = "kept"

	if cmd := m.dispatch(opTranslate); cmd == nil {
		t.Fatal("dispatch should return a command")
	}
	seq := m.pending[opTranslate].seq
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})

	if m.session.busy[opTranslate] {
		t.Fatal("cancel should return the operation to idle")
	}
	m.Update(operationResultMsg{op: opTranslate, seq: seq, result: "late"})
	if m.session.translation != "kept" {
		t.Fatalf("late result overwrote state: %q", m.session.translation)
	}
}

func TestLanguageSelectionShapesRoute(t *testing.T) {
	paths := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"translated_text": "مرحبا"})
	}))
	defer server.Close()

	client, err := backend.New(backend.Config{BaseURL: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	m := newTestModel(t, client)
	m.editor.SetValue("Bonjour")

	m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m.Update(tea.KeyMsg{Type: tea.KeyF3})
	if m.session.sourceLang != lang.French || m.session.targetLang != lang.Arabic {
		t.Fatalf("selection = %s→%s, want fr→ar", m.session.sourceLang, m.session.targetLang)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	drain(t, m, cmd)

	if got := <-paths; got != "/translate_fr_to_ar" {
		t.Fatalf("route = %s, want /translate_fr_to_ar", got)
	}
	if m.session.translation != "مرحبا" {
		t.Fatalf("translation = %q", m.session.translation)
	}
	if !m.session.translationLang.RightToLeft() {
		t.Fatal("arabic translation should be marked right to left")
	}
}

func TestTriggerKeysDoNotReachEditor(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	m.editor.SetValue("ab")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	if m.editor.Value() != "ab" {
		t.Fatalf("editor changed to %q", m.editor.Value())
	}
	if !m.session.busy[opTranslate] {
		t.Fatal("ctrl+t should start a translation")
	}
	if !strings.Contains(m.View(), busyLabel) {
		t.Fatal("busy trigger should show the loading caption")
	}
}

func TestThemeToggleRoundTrip(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	original := m.theme.palette
	before := m.View()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if !m.session.dark || !m.theme.dark {
		t.Fatal("theme should be dark after one toggle")
	}
	if reflect.DeepEqual(m.theme.palette, original) {
		t.Fatal("palette should change with the theme")
	}
	if m.theme.modeLabel() != "Dark Mode" {
		t.Fatalf("unexpected label %q", m.theme.modeLabel())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.session.dark {
		t.Fatal("second toggle should restore light mode")
	}
	if !reflect.DeepEqual(m.theme.palette, original) {
		t.Fatal("palette did not round trip")
	}
	if !reflect.DeepEqual(m.theme, newTheme(false)) {
		t.Fatal("styles did not round trip")
	}
	if after := m.View(); after != before {
		t.Fatalf("view changed after round trip\n--- before ---\n%s\n--- after ---\n%s", before, after)
	}
}

func TestPaletteFieldsDifferAcrossThemes(t *testing.T) {
	light, dark := newTheme(false).palette, newTheme(true).palette
	if light.Background == dark.Background || light.Panel == dark.Panel || light.Border == dark.Border {
		t.Fatal("surfaces should differ between themes")
	}
	for _, op := range operations {
		if light.Buttons[op] == dark.Buttons[op] {
			t.Fatalf("%s button color should differ between themes", op)
		}
	}
}

func TestPickerSelectionAndEscape(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	m.editor.SetValue("keep")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if !m.pickerOpen {
		t.Fatal("ctrl+o should open the picker")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.editor.Value() != "keep" {
		t.Fatal("keys should go to the picker while it is open")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.pickerOpen {
		t.Fatal("esc should close the picker")
	}
	if m.session.document != nil {
		t.Fatal("closing the picker must not select anything")
	}
}

func TestPickerAcceptsUpperCaseExtension(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	path := filepath.Join(m.picker.CurrentDirectory, "SCAN.PDF")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	m.Update(cmd())
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, m, cmd)

	if m.pickerOpen {
		t.Fatal("picker should close after a selection")
	}
	if m.session.document == nil || m.session.document.Name != "SCAN.PDF" {
		t.Fatalf("upper-case pdf should be selected, got %+v (error %q)", m.session.document, m.errorMessage)
	}
}

func TestLanguageLabelShowsNativeName(t *testing.T) {
	if got := languageLabel("From", lang.English); got != "From: English (en)" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := languageLabel("To", lang.French); got != "To: French · français (fr)" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestDocumentInspection(t *testing.T) {
	m := newTestModel(t, &fakeService{})

	m.Update(documentInspectedMsg{path: "/tmp/missing.pdf", err: errors.New("stat: no such file")})
	if m.session.document != nil {
		t.Fatal("missing files should not be selected")
	}

	doc := pdfdoc.Document{Path: "/tmp/scan.pdf", Name: "scan.pdf", Size: 10}
	m.Update(documentInspectedMsg{path: doc.Path, doc: doc, err: fmt.Errorf("%w: bad xref", pdfdoc.ErrUnreadable)})
	if m.session.document == nil || m.session.document.Name != "scan.pdf" {
		t.Fatalf("unreadable pdf should still be selected, got %+v", m.session.document)
	}
	if !strings.Contains(m.View(), "scan.pdf") {
		t.Fatal("view should describe the selected file")
	}
}

func TestDispatchWithoutServiceReportsError(t *testing.T) {
	m := newTestModel(t, nil)
	if cmd := m.dispatch(opTranslate); cmd != nil {
		t.Fatal("dispatch should not start without a service")
	}
	if m.session.busy[opTranslate] || m.errorMessage == "" {
		t.Fatal("expected idle state with an error message")
	}
}

func writePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n%%EOF\n"), 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return path
}
