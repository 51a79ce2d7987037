package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c != Default() {
		t.Fatalf("got %+v, want %+v", c, Default())
	}
	if c.Addr() != "localhost:4221" {
		t.Fatalf("Addr=%q", c.Addr())
	}
}

func TestParse_Flags(t *testing.T) {
	dir := t.TempDir()
	c, err := Parse([]string{
		"--directory", dir, "--host", "0.0.0.0", "--port", "8080",
		"--buffer", "1024", "--reassemble", "--max-request", "65536",
		"--read-timeout", "3s", "--log-level", "debug",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Directory != dir || c.Addr() != "0.0.0.0:8080" || c.BufferSize != 1024 || !c.Reassemble ||
		c.MaxRequestBytes != 65536 || c.ReadTimeout != 3*time.Second || c.LogLevel != "debug" {
		t.Fatalf("got %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]string{"--port", "abc"}); err == nil {
		t.Fatal("expected error for bad port")
	}
	if _, err := Parse([]string{"stray"}); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing dir", func(c *Config) { c.Directory = filepath.Join(dir, "nope") }, "does not exist"},
		{"file as dir", func(c *Config) { c.Directory = file }, "not a directory"},
		{"port", func(c *Config) { c.Port = 70000 }, "out of range"},
		{"buffer", func(c *Config) { c.BufferSize = 0 }, "buffer must be positive"},
		{"max request", func(c *Config) { c.Reassemble = true; c.MaxRequestBytes = 10 }, "smaller than buffer"},
		{"timeout", func(c *Config) { c.WriteTimeout = -time.Second }, "negative"},
		{"level", func(c *Config) { c.LogLevel = "chatty" }, "unknown log level"},
	}
	for _, tc := range cases {
		c := Default()
		c.Directory = dir
		tc.mutate(&c)
		err := c.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: err=%v, want containing %q", tc.name, err, tc.want)
		}
	}
}
