package httpx

import "github.com/mdeadwiler/http-protocol/httpx/internal/http1"

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusInternalServerError = 500
)

// StatusText returns the reason phrase for code.
func StatusText(code int) string {
	return http1.ReasonPhrase(code)
}
