package httpx

import (
	"errors"

	"github.com/mdeadwiler/http-protocol/httpx/internal/http1"
)

var (
	// ErrBadRequest matches every request that could not be parsed.
	ErrBadRequest = errors.New("httpx: bad request")

	ErrEmptyRequest         = http1.ErrEmptyMessage
	ErrMalformedRequestLine = http1.ErrRequestLine
	ErrRequestTooLarge      = http1.ErrTooLarge

	ErrServerClosed = errors.New("httpx: server closed")
)
