package httpx

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/mdeadwiler/http-protocol/httpx/internal/http1"
	"github.com/mdeadwiler/http-protocol/internal/obs"
)

const (
	DefaultAddr            = "localhost:4221"
	DefaultBufferSize      = 4096
	DefaultMaxRequestBytes = 1 << 20

	acceptRetryDelay = 10 * time.Millisecond
)

// Handler turns a request into a response.
type Handler interface {
	Handle(*Request) *Response
}

type HandlerFunc func(*Request) *Response

func (f HandlerFunc) Handle(r *Request) *Response {
	return f(r)
}

// Server accepts connections and answers exactly one request on each.
// Every accepted connection runs on its own goroutine and is closed once
// the response has been written.
type Server struct {
	Addr    string
	Handler Handler
	// BufferSize bounds the single read taken from each connection.
	BufferSize int
	// Reassemble keeps reading past the first read until the headers and
	// the declared Content-Length have arrived, up to MaxRequestBytes.
	Reassemble      bool
	MaxRequestBytes int
	// Zero timeouts mean no deadline.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Logger obs.Logger
	Meter  obs.Meter

	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logf(obs.Info, "listening on %s", ln.Addr())
	return s.Serve(ln)
}

// Serve runs the accept loop on l. Accept timeouts are retried; any other
// accept error is returned, or ErrServerClosed after Shutdown.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = l.Close()
		return ErrServerClosed
	}
	s.ln = l
	s.mu.Unlock()
	defer l.Close()

	for {
		c, err := l.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.logf(obs.Warn, "accept failed, retrying: %v", err)
				time.Sleep(acceptRetryDelay)
				continue
			}
			return err
		}
		go s.serveConn(c)
	}
}

// Shutdown stops accepting connections. Connections already being served
// run to completion on their own. Closing the listener does not block, so
// ctx is not consulted.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.ln == nil {
		return nil
	}
	err := s.ln.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) serveConn(c net.Conn) {
	defer c.Close()
	start := time.Now()

	if s.ReadTimeout > 0 {
		_ = c.SetReadDeadline(time.Now().Add(s.ReadTimeout))
	}
	buf, err := http1.ReadMessage(c, s.bufferSize(), s.Reassemble, s.maxRequestBytes())
	var req *Request
	var res *Response
	switch {
	case errors.Is(err, http1.ErrTooLarge):
		s.logf(obs.Warn, "request from %s rejected: %v", c.RemoteAddr(), err)
		s.metricCounter("httpx_server_parse_errors_total", 1)
		res = Empty(StatusBadRequest)
	case err != nil:
		s.logf(obs.Warn, "read from %s failed: %v", c.RemoteAddr(), err)
		return
	default:
		req, res = s.dispatch(buf)
	}

	if s.WriteTimeout > 0 {
		_ = c.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
	}
	n, err := res.WriteTo(c)
	if err != nil {
		s.logf(obs.Warn, "write to %s failed: %v", c.RemoteAddr(), err)
	}

	method, path, id := "-", "-", "-"
	if req != nil {
		method, path, id = req.Method, req.Path, req.ID
	}
	status := strconv.Itoa(res.StatusCode)
	s.logf(obs.Debug, "%s %s %s -> %d (%d bytes)", id, method, path, res.StatusCode, n)
	s.metricCounter("httpx_server_requests_total", 1,
		obs.Label{Key: "method", Value: method}, obs.Label{Key: "status", Value: status})
	s.metricHistogram("httpx_server_request_duration_ms", float64(time.Since(start).Microseconds())/1000,
		obs.Label{Key: "status", Value: status})
	s.metricHistogram("httpx_server_response_bytes", float64(n))
}

// dispatch parses buf and runs the handler. It never panics: parse failures
// and handler panics both become 400 responses.
func (s *Server) dispatch(buf []byte) (req *Request, res *Response) {
	defer func() {
		if p := recover(); p != nil {
			s.logf(obs.Error, "handler panic: %v", p)
			res = Empty(StatusBadRequest)
		}
	}()
	var err error
	req, err = ParseRequest(buf)
	if err != nil {
		s.logf(obs.Warn, "parse request: %v", err)
		s.metricCounter("httpx_server_parse_errors_total", 1)
		return nil, Empty(StatusBadRequest)
	}
	req.ID = newRequestID()
	res = s.handler().Handle(req)
	if res == nil {
		s.logf(obs.Error, "%s: handler returned no response", req.ID)
		res = Empty(StatusBadRequest)
	}
	return req, res
}

func (s *Server) handler() Handler {
	if s.Handler == nil {
		return HandlerFunc(func(*Request) *Response { return Empty(StatusNotFound) })
	}
	return s.Handler
}

func (s *Server) bufferSize() int {
	if s.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return s.BufferSize
}

func (s *Server) maxRequestBytes() int {
	if s.MaxRequestBytes <= 0 {
		return DefaultMaxRequestBytes
	}
	return s.MaxRequestBytes
}

func (s *Server) logf(level obs.Level, format string, args ...interface{}) {
	obs.OrNop(s.Logger).Logf(level, format, args...)
}

func (s *Server) metricCounter(name string, value float64, labels ...obs.Label) {
	obs.OrNopMeter(s.Meter).Counter(name, value, labels...)
}

func (s *Server) metricHistogram(name string, value float64, labels ...obs.Label) {
	obs.OrNopMeter(s.Meter).Histogram(name, value, labels...)
}
