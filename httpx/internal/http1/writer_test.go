package http1

import (
	"bytes"
	"testing"
)

func TestWriteResponse_Framing(t *testing.T) {
	var b bytes.Buffer
	hdr := []Field{
		{Name: "Content-Type", Value: "text/plain"},
		{Name: "Content-Length", Value: "3"},
	}
	if err := WriteResponse(&b, 200, "", hdr, []byte("abc")); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	want := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}

func TestWriteResponse_SanitizesValues(t *testing.T) {
	var b bytes.Buffer
	hdr := []Field{{Name: "X-Note", Value: "a\r\nInjected: yes"}}
	if err := WriteResponse(&b, 405, "", hdr, nil); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	want := "HTTP/1.1 405 Method Not Allowed\r\nX-Note: aInjected: yes\r\n\r\n"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}

func TestReasonPhrase(t *testing.T) {
	for code, want := range map[int]string{201: "Created", 400: "Bad Request", 404: "Not Found", 500: "Internal Server Error", 299: ""} {
		if got := ReasonPhrase(code); got != want {
			t.Errorf("ReasonPhrase(%d)=%q, want %q", code, got, want)
		}
	}
}
