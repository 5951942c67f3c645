/*
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

package server

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/stellar-burgers/api-tests/pkg/server/handler"
)

// Options allows behaviour to be defined on the CLI.
type Options struct {
	// ListenAddress is where the fake serves HTTP.
	ListenAddress string

	// ReadTimeout bounds reading a whole request.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a whole response.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// Debug enables development logging.
	Debug bool

	// Handler configures the API handlers.
	Handler handler.Options
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "listen-address", ":8080", "API listener address.")
	f.DurationVar(&o.ReadTimeout, "read-timeout", time.Second, "How long to wait for the client to send the request.")
	f.DurationVar(&o.WriteTimeout, "write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")
	f.DurationVar(&o.ShutdownTimeout, "shutdown-timeout", 5*time.Second, "How long to wait for in-flight requests on shutdown.")
	f.BoolVar(&o.Debug, "debug", false, "Enable development logging.")

	o.Handler.AddFlags(f)
}
