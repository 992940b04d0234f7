package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/oliverbestmann/brotview/config"
	"github.com/oliverbestmann/brotview/orion"
	"github.com/pkg/profile"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml config file")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the current directory")
	logLevel := flag.String("log-level", "", "overwrite the configured log level (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	if *logLevel != "" {
		if err := conf.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
			slog.Error("Invalid log level", slog.String("level", *logLevel))
			os.Exit(1)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     conf.LogLevel,
	})))

	os.Exit(run(conf, *profileMode))
}

func run(conf config.Config, profileMode string) int {
	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		slog.Error("Unknown profile mode", slog.String("mode", profileMode))
		return 1
	}

	if err := orion.Run(orion.RunOptions{Config: conf}); err != nil {
		slog.Error("Viewer failed", slog.String("err", err.Error()))
		return 1
	}

	return 0
}
