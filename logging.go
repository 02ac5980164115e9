package main

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

func newRootLogger(cfg logConfig) (*glog.BaseLogger, error) {
	options := []glog.Option{}

	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "":
	case "trace":
		options = append(options, glog.WithLevel(glog.Trace))
	case "debug":
		options = append(options, glog.WithLevel(glog.Debug))
	case "info":
		options = append(options, glog.WithLevel(glog.Info))
	case "warn", "warning":
		options = append(options, glog.WithLevel(glog.Warn))
	case "error":
		options = append(options, glog.WithLevel(glog.Error))
	default:
		return nil, fmt.Errorf("unsupported log level %q", cfg.Level)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	return glog.NewLogger(options...), nil
}
