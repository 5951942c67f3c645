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

package handler

import (
	"time"

	"github.com/spf13/pflag"
)

// Options allows behaviour to be defined on the CLI.
type Options struct {
	// TokenSecret signs access tokens.
	TokenSecret string

	// AccessTokenTTL is how long an access token is honoured.
	AccessTokenTTL time.Duration

	// RefreshTokenTTL is how long a refresh token can be exchanged,
	// zero disables expiry.
	RefreshTokenTTL time.Duration
}

// DefaultOptions returns the options the fake runs with when nothing is set.
func DefaultOptions() *Options {
	return &Options{
		TokenSecret:    "stellar-burgers-fake",
		AccessTokenTTL: 20 * time.Minute,
	}
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	defaults := DefaultOptions()

	f.StringVar(&o.TokenSecret, "token-secret", defaults.TokenSecret, "HMAC secret used to sign access tokens.")
	f.DurationVar(&o.AccessTokenTTL, "access-token-ttl", defaults.AccessTokenTTL, "Lifetime of access tokens.")
	f.DurationVar(&o.RefreshTokenTTL, "refresh-token-ttl", defaults.RefreshTokenTTL, "Lifetime of refresh tokens, 0 means forever.")
}
