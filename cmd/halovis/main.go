package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/halovis/halovis/internal/app"
	"github.com/halovis/halovis/internal/audio"
	"github.com/halovis/halovis/internal/config"
	"github.com/halovis/halovis/internal/logging"
	"github.com/halovis/halovis/internal/render"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

func main() {
	listDevices := flag.Bool("list-devices", false, "list capture-capable devices and exit")
	device := flag.Int("device", -2, "capture device index (-1 = auto-select)")
	logLevel := flag.String("log-level", "", "override configured log level")
	flag.Parse()

	// Load config from XDG/Library/AppData
	cfg, err := config.Load()
	if err != nil {
		log := logging.New()
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *device != -2 {
		cfg.Audio.Device = *device
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log := logging.NewWithLevel(cfg.LogLevel)

	// Initialize audio capture
	capture, err := audio.New(cfg.Audio, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize audio")
	}
	defer capture.Close()

	if *listDevices {
		devices, err := capture.ListDevices()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list devices")
		}
		for _, d := range devices {
			fmt.Printf("%d: %s (inputs: %d, rate: %.0f)\n",
				d.Index, d.Name, d.InputChannels, d.SampleRate)
		}
		return
	}

	application := app.New(app.Config{
		Audio:  capture,
		Config: cfg,
		Logger: log,
	})

	if err := application.Start(); err != nil {
		if errors.Is(err, audio.ErrDeviceNotFound) {
			log.Error().Msg("No capture device found; run with -list-devices and pick one with -device")
		}
		log.Fatal().Err(err).Msg("Failed to start capture")
	}

	log.Info().Str("version", Version).Str("commit", Commit).Msg("halovis starting...")

	// Setup shutdown signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Shutting down...")
		if err := application.Stop(); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
		}
		os.Exit(0)
	}()

	// Run the renderer - MUST run on main thread
	if err := render.New(application, log).Run(); err != nil {
		log.Fatal().Err(err).Msg("Renderer error")
	}

	if err := application.Stop(); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}
