package httpx

import (
	"bytes"
	"compress/gzip"
	"io"
	"strconv"

	"github.com/mdeadwiler/http-protocol/httpx/internal/http1"
)

const (
	ContentTypeText   = "text/plain"
	ContentTypeBinary = "application/octet-stream"
)

// Response is a fully built response. Content-Length in Header always
// equals len(Body).
type Response struct {
	StatusCode int
	Header     Fields
	Body       []byte
}

// BuildResponse assembles a response. A nil body is sent as empty. With
// useGzip the body is gzip-compressed and Content-Encoding is set; the
// Content-Length reflects the compressed size.
func BuildResponse(status int, body []byte, contentType string, useGzip bool) (*Response, error) {
	if body == nil {
		body = []byte{}
	}
	if contentType == "" {
		contentType = ContentTypeText
	}
	res := &Response{StatusCode: status}
	res.Header.Add("Content-Type", contentType)
	if useGzip {
		z, err := compress(body)
		if err != nil {
			return nil, err
		}
		body = z
		res.Header.Add("Content-Encoding", "gzip")
	}
	res.Header.Add("Content-Length", strconv.Itoa(len(body)))
	res.Body = body
	return res, nil
}

// Empty returns a text/plain response with no body.
func Empty(status int) *Response {
	return &Response{
		StatusCode: status,
		Header: Fields{
			{Name: "Content-Type", Value: ContentTypeText},
			{Name: "Content-Length", Value: "0"},
		},
		Body: []byte{},
	}
}

// Status returns the status line remainder, e.g. "404 Not Found".
func (r *Response) Status() string {
	return strconv.Itoa(r.StatusCode) + " " + StatusText(r.StatusCode)
}

// WriteTo serializes the response onto w.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := http1.WriteResponse(cw, r.StatusCode, "", r.Header, r.Body)
	return cw.n, err
}

// Bytes returns the serialized response.
func (r *Response) Bytes() []byte {
	var b bytes.Buffer
	_, _ = r.WriteTo(&b)
	return b.Bytes()
}

func compress(p []byte) ([]byte, error) {
	var b bytes.Buffer
	zw := gzip.NewWriter(&b)
	if _, err := zw.Write(p); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
