package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/knchan0x/Mini-SQLite/internal/core/database"
	"github.com/knchan0x/Mini-SQLite/internal/core/minisql"
	"github.com/knchan0x/Mini-SQLite/internal/core/parser"
	"github.com/knchan0x/Mini-SQLite/internal/pkg/logging"
)

const defaultDbFileName = "db"

var (
	dbPathFlag   string
	maxPagesFlag uint
)

func init() {
	flag.StringVar(&dbPathFlag, "db", defaultDbFileName, "Path to the database file")
	flag.UintVar(&maxPagesFlag, "max-pages", minisql.MaxPages, "Maximum number of pages in the database file")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger, err := logging.NewLogger(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync() // flushes buffer, if any

	aDatabase, err := database.Open(
		ctx,
		logger,
		dbPathFlag,
		parser.New(),
		database.WithMaxPages(uint32(maxPagesFlag)),
	)
	if err != nil {
		logger.Sugar().With("path", dbPathFlag, "error", err).Error("failed to open database")
		return 1
	}

	aRepl := newRepl(aDatabase, os.Stdin, os.Stdout)

	done := make(chan error, 1)
	go func() {
		done <- aRepl.run(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case err := <-done:
		if err != nil {
			logger.Sugar().With("error", err).Error("fatal error")
			exitCode = 1
		}
	case sig := <-sigChan:
		logger.Sugar().With("signal", sig.String()).Info("received signal")
		cancel()
		exitCode = 1
	}

	if err := aRepl.close(context.Background()); err != nil {
		logger.Sugar().With("error", err).Error("failed to close database")
		return 1
	}

	return exitCode
}
