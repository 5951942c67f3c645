/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/stellar-burgers/api-tests/pkg/server"
)

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func main() {
	var options server.Options

	options.AddFlags(pflag.CommandLine)

	pflag.Parse()

	logger, err := newLogger(options.Debug)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("service starting", zap.String("application", "stellar-burgers-fake"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(&options, logger).Run(ctx); err != nil {
		logger.Error("service failed", zap.Error(err))
		stop()
		os.Exit(1) //nolint:gocritic
	}
}
