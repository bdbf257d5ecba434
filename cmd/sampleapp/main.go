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
	"github.com/amirulhaque/Kubernetes-demo/webapp"
)

type option struct {
	Listen   string `short:"l" long:"listen" description:"listen address" default:":8000"`
	LogLevel string `short:"L" long:"log-level" description:"log level (debug, info, warning, error)" default:"info"`
	Version  bool   `short:"v" long:"version" description:"display the version and exit"`
}

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opt := parseCLI()

	if opt.Version {
		fmt.Printf("sampleapp, version: %s\n", buildinfo.Version)
		return
	}

	logger.Level.SetByName(opt.LogLevel)

	svc := webapp.New(webapp.Config{ListenAddr: opt.Listen})

	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-ch
		svc.Infof("received %s signal (%d). Terminating...", sig, sig)
		cancel()
	}()

	if err := svc.Run(ctx); err != nil {
		svc.Errorf("run: %v", err)
		os.Exit(1)
	}
}

func parseCLI() *option {
	opt := &option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "sampleapp"

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}
