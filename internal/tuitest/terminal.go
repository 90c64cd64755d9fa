package tuitest

import (
	"bytes"
	"io"
)

// reply pairs a terminal query with the answer a real emulator would give.
type reply struct {
	query  []byte
	answer []byte
}

// Background and foreground answers keep lipgloss on its dark-background path
// so rendered output is stable across hosts.
var terminalReplies = []reply{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderCap  = 256
	responderTail = 64
)

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, responderCap)}
}

// Process answers every query found in chunk. A short tail is kept so that
// queries split across reads are still seen.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	if len(tr.buf) > responderCap {
		tr.buf = append(tr.buf[:0], tr.buf[len(tr.buf)-responderTail:]...)
	}
}

// answerNext replies to the earliest pending query and drops the bytes up to it.
func (tr *terminalResponder) answerNext() bool {
	first, at := -1, -1
	for i, r := range terminalReplies {
		idx := bytes.Index(tr.buf, r.query)
		if idx >= 0 && (at < 0 || idx < at) {
			first, at = i, idx
		}
	}
	if first < 0 {
		return false
	}
	tr.buf = tr.buf[at+len(terminalReplies[first].query):]
	_, _ = tr.w.Write(terminalReplies[first].answer)
	return true
}
