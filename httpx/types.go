package httpx

import (
	"strings"

	"github.com/mdeadwiler/http-protocol/httpx/internal/http1"
)

// Header maps lower-cased request header names to trimmed values.
type Header map[string]string

func (h Header) Get(key string) string {
	if h == nil {
		return ""
	}
	return h[strings.ToLower(key)]
}

// Lookup is Get with a presence flag.
func (h Header) Lookup(key string) (string, bool) {
	if h == nil {
		return "", false
	}
	v, ok := h[strings.ToLower(key)]
	return v, ok
}

func (h Header) Set(key, value string) {
	if h == nil {
		return
	}
	h[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
}

func (h Header) Del(key string) {
	if h == nil {
		return
	}
	delete(h, strings.ToLower(key))
}

// Field is a single response header line.
type Field = http1.Field

// Fields is an ordered list of response headers.
type Fields []Field

// Get returns the first value named key, compared case-insensitively.
func (f Fields) Get(key string) string {
	for _, fl := range f {
		if strings.EqualFold(fl.Name, key) {
			return fl.Value
		}
	}
	return ""
}

func (f *Fields) Add(key, value string) {
	*f = append(*f, Field{Name: key, Value: value})
}
