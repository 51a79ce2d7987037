// Package httpx is a small HTTP/1.1 server that answers exactly one
// request per connection.
//
// A connection is read once (optionally reassembled up to a size limit),
// parsed into a Request, handed to a Handler and answered with the
// Response the handler builds. The connection is then closed. There is no
// keep-alive, pipelining or chunked transfer coding.
//
// Responses always carry Content-Type and a Content-Length matching the
// bytes on the wire. BuildResponse gzip-compresses the body when asked
// to; handlers decide with Request.AcceptsGzip.
//
// Quick start:
//
//	s := &httpx.Server{Addr: "localhost:4221"}
//	s.Handler = httpx.HandlerFunc(func(r *httpx.Request) *httpx.Response {
//	    res, err := httpx.BuildResponse(httpx.StatusOK, []byte("hello"), httpx.ContentTypeText, r.AcceptsGzip())
//	    if err != nil {
//	        return httpx.Empty(httpx.StatusInternalServerError)
//	    }
//	    return res
//	})
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
package httpx
