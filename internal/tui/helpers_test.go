package tui

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/polyglot/internal/lang"
)

type fakeService struct {
	translate    func(text string, src, tgt lang.Code) (string, error)
	summarize    func(text string) (string, error)
	summarizePDF func(name string, document io.Reader) (string, error)
	calls        []string
}

func (f *fakeService) Translate(ctx context.Context, text string, src, tgt lang.Code) (string, error) {
	f.calls = append(f.calls, "translate")
	if f.translate == nil {
		return "", errors.New("translate not stubbed")
	}
	return f.translate(text, src, tgt)
}

func (f *fakeService) Summarize(ctx context.Context, text string) (string, error) {
	f.calls = append(f.calls, "summarize")
	if f.summarize == nil {
		return "", errors.New("summarize not stubbed")
	}
	return f.summarize(text)
}

func (f *fakeService) SummarizePDF(ctx context.Context, name string, document io.Reader) (string, error) {
	f.calls = append(f.calls, "summarize_pdf")
	if f.summarizePDF == nil {
		return "", errors.New("summarize_pdf not stubbed")
	}
	return f.summarizePDF(name, document)
}

func newTestModel(t *testing.T, svc Service) *model {
	t.Helper()
	teaModel, ok := New(Config{Service: svc, PDFDir: t.TempDir()}).(*model)
	if !ok {
		t.Fatalf("expected *model, got %T", teaModel)
	}
	return teaModel
}

// drain executes cmd and feeds every resulting message back into the model
// until the chain settles. Spinner ticks are skipped since they reschedule
// themselves while anything is busy.
func drain(t *testing.T, m *model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case spinner.TickMsg:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
		return
	}
	if cmds, ok := sequenceCmds(msg); ok {
		for _, c := range cmds {
			drain(t, m, c)
		}
		return
	}
	_, next := m.Update(msg)
	drain(t, m, next)
}

// sequenceCmds unpacks the unexported message tea.Sequence produces.
func sequenceCmds(msg tea.Msg) ([]tea.Cmd, bool) {
	rv := reflect.ValueOf(msg)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	cmds := make([]tea.Cmd, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		cmd, ok := rv.Index(i).Interface().(tea.Cmd)
		if !ok {
			return nil, false
		}
		cmds = append(cmds, cmd)
	}
	return cmds, true
}
