package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/logicossoftware/go-mzfload/internal/logger"
)

// app holds the state shared by one run of the command tree.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string

	cfg Config
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr}
	return &cli.Command{
		Name:      "mzfload",
		Usage:     "Convert Sharp MZ MZF containers into MZ-800 Pico loader images",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config.yaml (default: user config dir)",
				Destination: &a.configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Value:       "info",
				Destination: &a.logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "log format (text, json, pretty)",
				Value:       "text",
				Destination: &a.logFormat,
			},
		},
		Before: a.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			a.convertCmd(),
			a.rawCmd(),
			a.arrayCmd(),
			a.inspectCmd(),
			a.verifyCmd(),
			a.versionCmd(),
		},
	}
}

// before loads the config file and installs the logger in the context.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path, explicit := a.configPath, a.configPath != ""
	if !explicit {
		path = configPath()
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return ctx, err
	}
	a.cfg = cfg
	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		a.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		a.logFormat = cfg.LogFormat
	}

	log, err := logger.ForFormat(a.logFormat, a.stderr, logger.ParseLevel(a.logLevel))
	if err != nil {
		return ctx, fmt.Errorf("--log-format: %w", err)
	}
	if path != "" {
		log.Debug("configuration", "path", path, "loaded", cfg != Config{})
	}
	return logger.WithContext(ctx, log), nil
}
