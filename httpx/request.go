package httpx

import (
	"fmt"
	"strings"

	"github.com/mdeadwiler/http-protocol/httpx/internal/http1"
)

// Request is one parsed HTTP request. It lives for a single connection.
type Request struct {
	Method string
	// Path is the raw request target; it always begins with "/".
	Path   string
	Proto  string
	Header Header
	Body   []byte
	// ID is assigned by the server for log correlation.
	ID string
}

// ParseRequest parses one complete request message. Failures match
// ErrBadRequest and the specific cause via errors.Is.
func ParseRequest(buf []byte) (*Request, error) {
	pr, err := http1.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return &Request{
		Method: pr.Method,
		Path:   pr.RequestURI,
		Proto:  pr.Proto,
		Header: Header(pr.Header),
		Body:   pr.Body,
	}, nil
}

// AcceptsGzip reports whether Accept-Encoding lists "gzip" as one of its
// comma-separated tokens. Substrings such as "gzip2" do not count.
func (r *Request) AcceptsGzip() bool {
	if r == nil {
		return false
	}
	for _, enc := range strings.Split(r.Header.Get("accept-encoding"), ",") {
		if strings.ToLower(strings.TrimSpace(enc)) == "gzip" {
			return true
		}
	}
	return false
}
