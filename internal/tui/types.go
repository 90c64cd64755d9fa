package tui

import (
	"context"
	"time"

	"github.com/csheth/polyglot/internal/lang"
	"github.com/csheth/polyglot/internal/pdfdoc"
)

type operation int

const (
	opTranslate operation = iota
	opSummarizeText
	opSummarizePDF
	opCount
)

var operations = []operation{opTranslate, opSummarizeText, opSummarizePDF}

func (o operation) String() string {
	switch o {
	case opTranslate:
		return "translate"
	case opSummarizeText:
		return "summarize"
	case opSummarizePDF:
		return "summarize_pdf"
	default:
		return "unknown"
	}
}

// label is the idle caption of the operation's trigger.
func (o operation) label() string {
	switch o {
	case opTranslate:
		return "Translate"
	case opSummarizeText:
		return "Summarize Text"
	case opSummarizePDF:
		return "Summarize PDF"
	default:
		return ""
	}
}

func (o operation) resultTitle() string {
	switch o {
	case opTranslate:
		return "Translation:"
	case opSummarizeText:
		return "Summary:"
	case opSummarizePDF:
		return "PDF Summary:"
	default:
		return ""
	}
}

const (
	appTitle       = "Polytechnique Student Translator"
	busyLabel      = "Loading..."
	editorHint     = "Enter text"
	noFileSelected = "No PDF selected"
)

const (
	minPanelWidth     = 30
	horizontalPadding = 4
	sideBySideWidth   = 100
	columnGap         = 2
	buttonGap         = 2
	editorBorder      = 2
	stackGap          = 1
	pickerChrome      = 2
	minUsableHeight   = 8
	minPanelHeight    = 3
)

// session is the user-visible state. Results are only replaced by a
// successful response for the same operation.
type session struct {
	sourceLang lang.Code
	targetLang lang.Code
	document   *pdfdoc.Document

	translation     string
	translationLang lang.Code
	textSummary     string
	pdfSummary      string

	busy [opCount]bool
	dark bool
}

func (s *session) result(op operation) string {
	switch op {
	case opTranslate:
		return s.translation
	case opSummarizeText:
		return s.textSummary
	case opSummarizePDF:
		return s.pdfSummary
	default:
		return ""
	}
}

func (s *session) setResult(op operation, value string) {
	switch op {
	case opTranslate:
		s.translation = value
	case opSummarizeText:
		s.textSummary = value
	case opSummarizePDF:
		s.pdfSummary = value
	}
}

func (s *session) busyCount() int {
	count := 0
	for _, busy := range s.busy {
		if busy {
			count++
		}
	}
	return count
}

// pendingCall tracks the request currently allowed to settle an operation.
// A zero seq means nothing is pending.
type pendingCall struct {
	seq       uint64
	cancel    context.CancelFunc
	startedAt time.Time
}
