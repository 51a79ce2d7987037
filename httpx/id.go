package httpx

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
)

// requestSeq numbers requests when the random source is unavailable.
var requestSeq atomic.Uint64

// newRequestID returns 16 hex digits identifying one request in the logs.
func newRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "seq-" + strconv.FormatUint(requestSeq.Add(1), 10)
	}
	return hex.EncodeToString(b[:])
}
