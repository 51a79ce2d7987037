// Package config holds the server's startup configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/mdeadwiler/http-protocol/internal/obs"
)

type Config struct {
	// Directory is the root of the file store. It must exist.
	Directory string
	Host      string
	Port      int
	// BufferSize bounds the single read taken from each connection.
	BufferSize int
	// Reassemble reads past the first read up to MaxRequestBytes.
	Reassemble      bool
	MaxRequestBytes int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	LogLevel        string
}

func Default() Config {
	return Config{
		Directory:       "/tmp",
		Host:            "localhost",
		Port:            4221,
		BufferSize:      4096,
		MaxRequestBytes: 1 << 20,
		LogLevel:        "info",
	}
}

// Parse reads command line flags over Default. It does not validate.
func Parse(args []string) (Config, error) {
	c := Default()
	fs := flag.NewFlagSet("http-server", flag.ContinueOnError)
	fs.StringVar(&c.Directory, "directory", c.Directory, "directory to serve files from")
	fs.StringVar(&c.Host, "host", c.Host, "address to bind")
	fs.IntVar(&c.Port, "port", c.Port, "port to bind")
	fs.IntVar(&c.BufferSize, "buffer", c.BufferSize, "bytes taken in the single read per connection")
	fs.BoolVar(&c.Reassemble, "reassemble", c.Reassemble, "keep reading until headers and Content-Length are complete")
	fs.IntVar(&c.MaxRequestBytes, "max-request", c.MaxRequestBytes, "upper bound on a reassembled request")
	fs.DurationVar(&c.ReadTimeout, "read-timeout", c.ReadTimeout, "read deadline per connection (0 = none)")
	fs.DurationVar(&c.WriteTimeout, "write-timeout", c.WriteTimeout, "write deadline per connection (0 = none)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("config: unexpected arguments %v", fs.Args())
	}
	return c, nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks every field; the directory must be an existing directory.
func (c Config) Validate() error {
	var errs []error
	if fi, err := os.Stat(c.Directory); err != nil {
		errs = append(errs, fmt.Errorf("config: directory %q does not exist", c.Directory))
	} else if !fi.IsDir() {
		errs = append(errs, fmt.Errorf("config: %q is not a directory", c.Directory))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: port %d out of range", c.Port))
	}
	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("config: buffer must be positive, got %d", c.BufferSize))
	}
	if c.Reassemble && c.MaxRequestBytes < c.BufferSize {
		errs = append(errs, fmt.Errorf("config: max-request %d smaller than buffer %d", c.MaxRequestBytes, c.BufferSize))
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		errs = append(errs, errors.New("config: timeouts must not be negative"))
	}
	if _, err := obs.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
