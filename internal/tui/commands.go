package tui

import (
	"context"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/polyglot/internal/backend"
	"github.com/csheth/polyglot/internal/lang"
	"github.com/csheth/polyglot/internal/pdfdoc"
)

// Service is the subset of the backend client the view drives.
type Service interface {
	Translate(ctx context.Context, text string, src, tgt lang.Code) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
	SummarizePDF(ctx context.Context, filename string, document io.Reader) (string, error)
}

type operationResultMsg struct {
	op     operation
	seq    uint64
	lang   lang.Code
	result string
	err    error
}

type documentInspectedMsg struct {
	path string
	doc  pdfdoc.Document
	err  error
}

func translateJob(svc Service, seq uint64, text string, src, tgt lang.Code) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		translated, err := svc.Translate(ctx, text, src, tgt)
		return operationResultMsg{op: opTranslate, seq: seq, lang: tgt, result: translated, err: err}, err
	}
}

func summarizeTextJob(svc Service, seq uint64, text string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		summary, err := svc.Summarize(ctx, text)
		return operationResultMsg{op: opSummarizeText, seq: seq, result: summary, err: err}, err
	}
}

// summarizePDFJob dispatches even without a selection; the service client
// rejects the missing document on the ordinary failure path.
func summarizePDFJob(svc Service, seq uint64, path string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		var (
			name     string
			document io.Reader
		)
		if path != "" {
			file, err := pdfdoc.Open(path)
			if err != nil {
				err = &backend.CallError{Route: opSummarizePDF.String(), Err: err}
				return operationResultMsg{op: opSummarizePDF, seq: seq, err: err}, err
			}
			defer file.Close()
			name = filepath.Base(path)
			document = file
		}
		summary, err := svc.SummarizePDF(ctx, name, document)
		return operationResultMsg{op: opSummarizePDF, seq: seq, result: summary, err: err}, err
	}
}

func inspectDocumentCmd(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := pdfdoc.Inspect(path)
		return documentInspectedMsg{path: path, doc: doc, err: err}
	}
}
