// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/amirulhaque/Kubernetes-demo/logger"
	"github.com/amirulhaque/Kubernetes-demo/pkg/buildinfo"
	"github.com/amirulhaque/Kubernetes-demo/scraper"
)

type option struct {
	Config   string `short:"c" long:"config" description:"config file path"`
	LogLevel string `short:"L" long:"log-level" description:"log level (debug, info, warning, error)" default:"info"`
	Version  bool   `short:"v" long:"version" description:"display the version and exit"`
}

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opt := parseCLI()

	if opt.Version {
		fmt.Printf("samplescraper, version: %s\n", buildinfo.Version)
		return
	}

	// checked here, not via a required tag, so -v works without a config
	if opt.Config == "" {
		fmt.Fprintln(os.Stderr, "the required flag '-c, --config' was not specified")
		os.Exit(1)
	}

	logger.Level.SetByName(opt.LogLevel)

	cfg, err := scraper.LoadConfig(opt.Config)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	s, err := scraper.New(cfg)
	if err != nil {
		logger.Errorf("failed to create scraper: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-ch
		s.Infof("received %s signal (%d). Terminating...", sig, sig)
		cancel()
	}()

	s.Run(ctx)
}

func parseCLI() *option {
	opt := &option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "samplescraper"

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}
