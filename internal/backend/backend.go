// Package backend talks to the translation and summarization service.
//
// The service exposes three route families, all POST:
//
//	translate_<src>_to_<tgt>  {"text": ...}      -> {"translated_text": ...}
//	summarize                 {"text": ...}      -> {"summary": ...}
//	summarize_pdf             multipart "file"   -> {"summary": ...}
package backend

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/csheth/polyglot/internal/lang"
)

const (
	routeSummarize    = "summarize"
	routeSummarizePDF = "summarize_pdf"

	// PDFField is the multipart field the service reads the upload from.
	PDFField = "file"

	pdfContentType = "application/pdf"

	maxErrorBody = 512
)

// ErrServiceCall is the only failure kind the client distinguishes. It covers
// connection errors, non-2xx responses and malformed or incomplete bodies.
var ErrServiceCall = errors.New("service call failed")

// CallError describes a failed request. errors.Is(err, ErrServiceCall) holds
// for every CallError.
type CallError struct {
	Route      string
	StatusCode int
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", ErrServiceCall, e.Route, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrServiceCall, e.Route, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

func (e *CallError) Is(target error) bool { return target == ErrServiceCall }

// Config describes how to reach the service.
type Config struct {
	BaseURL string
	// Timeout bounds a whole request. Zero leaves it to the caller's context.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues requests against a fixed origin. It is safe for concurrent use.
type Client struct {
	base   string
	client *http.Client
}

// New validates the base URL and builds a client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must include scheme and host", cfg.BaseURL)
	}
	return &Client{
		base:   base,
		client: pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}, nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	return &http.Client{Timeout: timeout}
}

// TranslateRoute returns the route for a language pair, eg. translate_fr_to_ar.
// Identical source and target codes are passed through unchanged.
func TranslateRoute(src, tgt lang.Code) string {
	return fmt.Sprintf("translate_%s_to_%s", src, tgt)
}

func (c *Client) endpoint(route string) string {
	return c.base + "/" + route
}
