package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/csheth/polyglot/internal/lang"
)

type textPayload struct {
	Text string `json:"text"`
}

type translateResponse struct {
	TranslatedText *string `json:"translated_text"`
}

type summaryResponse struct {
	Summary *string `json:"summary"`
}

// Translate sends text to translate_<src>_to_<tgt> and returns translated_text.
func (c *Client) Translate(ctx context.Context, text string, src, tgt lang.Code) (string, error) {
	route := TranslateRoute(src, tgt)
	var parsed translateResponse
	if err := c.postJSON(ctx, route, textPayload{Text: text}, &parsed); err != nil {
		return "", err
	}
	if parsed.TranslatedText == nil {
		return "", &CallError{Route: route, Err: errors.New("response missing translated_text")}
	}
	return *parsed.TranslatedText, nil
}

// Summarize sends text to the summarize route and returns summary.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	var parsed summaryResponse
	if err := c.postJSON(ctx, routeSummarize, textPayload{Text: text}, &parsed); err != nil {
		return "", err
	}
	if parsed.Summary == nil {
		return "", &CallError{Route: routeSummarize, Err: errors.New("response missing summary")}
	}
	return *parsed.Summary, nil
}

// SummarizePDF uploads the document under the "file" form field. A nil
// document fails like any other call; nothing is sent.
func (c *Client) SummarizePDF(ctx context.Context, filename string, document io.Reader) (string, error) {
	if document == nil {
		return "", &CallError{Route: routeSummarizePDF, Err: errors.New("no file selected")}
	}
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreatePart(pdfPartHeader(filename))
	if err != nil {
		return "", &CallError{Route: routeSummarizePDF, Err: err}
	}
	if _, err := io.Copy(part, document); err != nil {
		return "", &CallError{Route: routeSummarizePDF, Err: fmt.Errorf("read %s: %w", filename, err)}
	}
	if err := form.Close(); err != nil {
		return "", &CallError{Route: routeSummarizePDF, Err: err}
	}

	var parsed summaryResponse
	if err := c.post(ctx, routeSummarizePDF, form.FormDataContentType(), body, &parsed); err != nil {
		return "", err
	}
	if parsed.Summary == nil {
		return "", &CallError{Route: routeSummarizePDF, Err: errors.New("response missing summary")}
	}
	return *parsed.Summary, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// pdfPartHeader mirrors what a browser sends for a PDF file input.
func pdfPartHeader(filename string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(PDFField), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", pdfContentType)
	return h
}

func (c *Client) postJSON(ctx context.Context, route string, payload any, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return &CallError{Route: route, Err: err}
	}
	return c.post(ctx, route, "application/json", bytes.NewReader(buf), out)
}

func (c *Client) post(ctx context.Context, route, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(route), body)
	if err != nil {
		return &CallError{Route: route, Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &CallError{Route: route, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &CallError{Route: route, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &CallError{
			Route:      route,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response %s (%s)", resp.Status, clip(raw, maxErrorBody)),
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &CallError{Route: route, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func clip(raw []byte, limit int) string {
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "…"
}
