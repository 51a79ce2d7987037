package router

import (
	"strconv"
	"strings"

	"github.com/mdeadwiler/http-protocol/httpx"
	"github.com/mdeadwiler/http-protocol/internal/obs"
)

type fileHandler struct {
	files  FileStore
	logger obs.Logger
}

func (h *fileHandler) Handle(r *httpx.Request) *httpx.Response {
	name := strings.TrimPrefix(r.Path, filesPrefix)
	if name == "" {
		return httpx.Empty(httpx.StatusBadRequest)
	}
	switch r.Method {
	case "POST":
		return h.store(r, name)
	case "GET":
		return h.fetch(r, name)
	default:
		return httpx.Empty(httpx.StatusMethodNotAllowed)
	}
}

// store writes the first Content-Length bytes of the body. A missing,
// zero, negative or non-numeric length is a bad request.
func (h *fileHandler) store(r *httpx.Request, name string) *httpx.Response {
	v, ok := r.Header.Lookup("content-length")
	if !ok {
		v = "0"
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		h.logger.Logf(obs.Debug, "%s: bad content-length %q for %s", r.ID, v, name)
		return httpx.Empty(httpx.StatusBadRequest)
	}
	body := r.Body
	if n < len(body) {
		body = body[:n]
	}
	if err := h.files.Write(name, body); err != nil {
		h.logger.Logf(obs.Warn, "%s: %v", r.ID, err)
		return httpx.Empty(httpx.StatusInternalServerError)
	}
	return httpx.Empty(httpx.StatusCreated)
}

// fetch answers 404 for both missing files and unsafe names so the
// response never reveals which one it was.
func (h *fileHandler) fetch(r *httpx.Request, name string) *httpx.Response {
	content, err := h.files.Read(name)
	if err != nil {
		h.logger.Logf(obs.Debug, "%s: %v", r.ID, err)
		return httpx.Empty(httpx.StatusNotFound)
	}
	return negotiated(r, httpx.StatusOK, content, httpx.ContentTypeBinary)
}
