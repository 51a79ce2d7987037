// Package router maps requests onto the server's fixed set of routes.
package router

import (
	"strings"

	"github.com/mdeadwiler/http-protocol/httpx"
	"github.com/mdeadwiler/http-protocol/internal/obs"
)

const (
	WelcomeText      = "Welcome to the root path!"
	MissingUserAgent = "Missing User-Agent"

	filesPrefix = "/files/"
	echoPrefix  = "/echo/"
)

// FileStore is the storage the /files/ route reads from and writes to.
type FileStore interface {
	Read(name string) ([]byte, error)
	Write(name string, content []byte) error
}

type route struct {
	name    string
	match   func(path string) bool
	handler httpx.Handler
}

// Router dispatches on the request path. Routes are tried in order and the
// first match wins; anything unmatched is 404.
//
//	/files/<name>  file handler
//	/echo/<text>   echoes <text>
//	/              welcome text
//	/user-agent    echoes the User-Agent header
type Router struct {
	routes []route
	logger obs.Logger
}

func New(files FileStore, logger obs.Logger) *Router {
	logger = obs.OrNop(logger)
	return &Router{
		logger: logger,
		routes: []route{
			{name: "files", match: hasPrefix(filesPrefix), handler: &fileHandler{files: files, logger: logger}},
			{name: "echo", match: hasPrefix(echoPrefix), handler: httpx.HandlerFunc(echo)},
			{name: "root", match: equals("/"), handler: httpx.HandlerFunc(welcome)},
			{name: "user-agent", match: equals("/user-agent"), handler: httpx.HandlerFunc(userAgent)},
		},
	}
}

func (rt *Router) Handle(r *httpx.Request) *httpx.Response {
	for _, e := range rt.routes {
		if e.match(r.Path) {
			rt.logger.Logf(obs.Debug, "%s: %s %s -> %s", r.ID, r.Method, r.Path, e.name)
			return e.handler.Handle(r)
		}
	}
	return httpx.Empty(httpx.StatusNotFound)
}

func hasPrefix(p string) func(string) bool {
	return func(path string) bool { return strings.HasPrefix(path, p) }
}

func equals(p string) func(string) bool {
	return func(path string) bool { return path == p }
}

func echo(r *httpx.Request) *httpx.Response {
	return negotiated(r, httpx.StatusOK, []byte(strings.TrimPrefix(r.Path, echoPrefix)), httpx.ContentTypeText)
}

func welcome(r *httpx.Request) *httpx.Response {
	return negotiated(r, httpx.StatusOK, []byte(WelcomeText), httpx.ContentTypeText)
}

func userAgent(r *httpx.Request) *httpx.Response {
	ua, ok := r.Header.Lookup("user-agent")
	if !ok {
		ua = MissingUserAgent
	}
	return negotiated(r, httpx.StatusOK, []byte(ua), httpx.ContentTypeText)
}

// negotiated builds a response gzip-encoded when the client accepts it.
func negotiated(r *httpx.Request, status int, body []byte, contentType string) *httpx.Response {
	res, err := httpx.BuildResponse(status, body, contentType, r.AcceptsGzip())
	if err != nil {
		return httpx.Empty(httpx.StatusInternalServerError)
	}
	return res
}
