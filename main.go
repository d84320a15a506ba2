package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duckview/duckview/duck"
	"github.com/duckview/duckview/gologger"
	"github.com/duckview/duckview/http_server"
	"github.com/duckview/duckview/tui"
	"github.com/duckview/duckview/utils"
)

var logger = gologger.NewLogger()

func main() {
	var (
		dbPath = flag.String("db", utils.DB_PATH, "path to the DuckDB database file")
		table  = flag.String("table", "", "table to open on startup")
		serve  = flag.Bool("serve", false, "run the headless HTTP server instead of the TUI")
		listen = flag.String("listen", "", "listen address for -serve (default :"+utils.HTTP_PORT+")")
	)
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "missing -db (or DB_PATH) database file path")
		os.Exit(1)
	}

	conn, err := duck.Open(*dbPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *dbPath).Msg("error opening database")
		os.Exit(1)
	}
	defer conn.Close()

	if *serve {
		runServer(conn, *listen)
		return
	}

	if err := tui.Run(conn, *table); err != nil {
		logger.Error().Err(err).Msg("error running TUI")
		os.Exit(1)
	}
}

func runServer(conn *duck.Conn, listen string) {
	httpServer := http_server.StartHTTPServer(conn, listen)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Warn().Msg("received shutdown signal!")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown HTTP server")
	} else {
		logger.Info().Msg("successfully shutdown HTTP server")
	}
}
