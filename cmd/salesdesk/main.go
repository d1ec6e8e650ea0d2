package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/diewo77/salesdesk/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := newEnv(cfg)
	defer e.close()

	if err := newApp(e).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, e.message(err))
		stop()
		e.close()
		os.Exit(exitCode(err))
	}
}

// loadConfig reads the environment, routes the log, then reads the company
// file so that its messages land in the log file too.
func loadConfig() *config.Config {
	cfg := config.Load()
	if !cfg.Database.Debug {
		log.SetOutput(logSink(cfg))
	}
	cfg.Company = config.LoadCompany(cfg.CompanyFile)
	return cfg
}

// logSink sends the component log to a file in the data directory so that
// command output stays readable. DB_DEBUG keeps it on stderr.
func logSink(cfg *config.Config) *os.File {
	if err := os.MkdirAll(cfg.Database.DataDir, 0o755); err != nil {
		return os.Stderr
	}
	f, err := os.OpenFile(filepath.Join(cfg.Database.DataDir, "salesdesk.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr
	}
	return f
}
