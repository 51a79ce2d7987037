package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mdeadwiler/http-protocol/httpx"
	"github.com/mdeadwiler/http-protocol/internal/config"
	"github.com/mdeadwiler/http-protocol/internal/filestore"
	"github.com/mdeadwiler/http-protocol/internal/obs"
	"github.com/mdeadwiler/http-protocol/internal/router"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	level, _ := obs.ParseLevel(cfg.LogLevel)
	logger := obs.StdLogger{L: log.New(os.Stderr, "", log.LstdFlags), Min: level}

	store, err := filestore.New(cfg.Directory)
	if err != nil {
		log.Fatal(err)
	}
	s := &httpx.Server{
		Addr:            cfg.Addr(),
		Handler:         router.New(store, logger),
		BufferSize:      cfg.BufferSize,
		Reassemble:      cfg.Reassemble,
		MaxRequestBytes: cfg.MaxRequestBytes,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		Logger:          logger,
		Meter:           obs.LogMeter{L: logger},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()

	logger.Logf(obs.Info, "serving files from %s", store.Root())
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, httpx.ErrServerClosed) {
		log.Fatal(err)
	}
}
