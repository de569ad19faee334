package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df07/interactive-raytracer/pkg/renderer"
	"github.com/df07/interactive-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes-dir", "", "Directory of YAML scene files (default: ./scenes or ../scenes)")
	staticDir := flag.String("static-dir", "static/", "Directory of browser client files")
	workers := flag.Int("workers", 0, "Render workers per frame (0 = number of CPUs)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid -log-level", "value", *logLevel, "err", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = *workers

	// Create and start web server
	webServer := server.NewServer(server.Config{
		Port:         *port,
		ScenesDir:    *scenesDir,
		StaticDir:    *staticDir,
		RenderConfig: renderConfig,
		Logger:       logger,
	})

	logger.Info("Interactive Raytracer Web Server", "port", *port)

	if err := webServer.Start(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
