package http1

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
)

var (
	ErrEmptyMessage = errors.New("http1: empty message")
	ErrRequestLine  = errors.New("http1: malformed request line")
	ErrTooLarge     = errors.New("http1: message too large")
)

var headerEnd = []byte("\r\n\r\n")

// ParsedRequest is a minimal representation parsed from the wire.
// Header keys are lower-cased; a repeated name keeps its last value.
type ParsedRequest struct {
	Method     string
	RequestURI string
	Proto      string
	Header     map[string]string
	Body       []byte
}

// Parse splits one complete message held in buf. Everything after the first
// blank line is body; a message without one has an empty body.
func Parse(buf []byte) (*ParsedRequest, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyMessage
	}
	head, body := buf, []byte(nil)
	if i := bytes.Index(buf, headerEnd); i >= 0 {
		head, body = buf[:i], buf[i+len(headerEnd):]
	}
	lines := strings.Split(string(head), "\r\n")
	parts := strings.Fields(lines[0])
	if len(parts) != 3 {
		return nil, ErrRequestLine
	}
	method, uri, proto := parts[0], parts[1], parts[2]
	if !strings.HasPrefix(uri, "/") {
		return nil, ErrRequestLine
	}
	return &ParsedRequest{
		Method:     method,
		RequestURI: uri,
		Proto:      proto,
		Header:     parseHeaders(lines[1:]),
		Body:       append([]byte{}, body...),
	}, nil
}

// Lines without a colon are skipped.
func parseHeaders(lines []string) map[string]string {
	h := make(map[string]string, len(lines))
	for _, line := range lines {
		i := strings.IndexByte(line, ':')
		if i < 0 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(line[:i]))
		if k == "" {
			continue
		}
		h[k] = strings.TrimSpace(line[i+1:])
	}
	return h
}

// ReadMessage performs one Read of at most bufSize bytes from r. With
// reassemble set it keeps reading until the header terminator has arrived
// and the declared Content-Length is satisfied, failing with ErrTooLarge once
// the message would exceed max bytes. A peer that stops sending early yields
// whatever arrived.
func ReadMessage(r io.Reader, bufSize int, reassemble bool, max int) ([]byte, error) {
	buf := make([]byte, bufSize)
	n, err := r.Read(buf)
	if n == 0 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	msg := append([]byte(nil), buf[:n]...)
	if !reassemble {
		return msg, nil
	}
	for {
		need, done := missing(msg)
		if done {
			return msg, nil
		}
		if max > 0 && (len(msg) > max || need > max-len(msg)) {
			return nil, ErrTooLarge
		}
		if err != nil {
			return msg, nil
		}
		n, err = r.Read(buf)
		msg = append(msg, buf[:n]...)
	}
}

// missing reports how many body bytes are still outstanding and whether the
// message is complete. Before the header terminator it reports (0, false).
func missing(msg []byte) (int, bool) {
	i := bytes.Index(msg, headerEnd)
	if i < 0 {
		return 0, false
	}
	want := declaredLength(msg[:i])
	got := len(msg) - i - len(headerEnd)
	if got >= want {
		return 0, true
	}
	return want - got, false
}

// An absent or unusable Content-Length counts as zero.
func declaredLength(head []byte) int {
	v, ok := parseHeaders(strings.Split(string(head), "\r\n")[1:])["content-length"]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
