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

package api

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultTestTimeout    = 5 * time.Minute
	defaultEmailDomain    = "example.com"
)

// TestConfig is the explicit configuration handed to the API client.
// An empty BaseURL means the suites start an in-process fake service.
type TestConfig struct {
	BaseURL         string
	RequestTimeout  time.Duration
	TestTimeout     time.Duration
	RequestRate     float64
	RequestBurst    int
	EmailDomain     string
	SkipIntegration bool
	DebugLogging    bool
	LogRequests     bool
	LogResponses    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if a configured value is unusable.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:         strings.TrimSuffix(os.Getenv("API_BASE_URL"), "/"),
		RequestTimeout:  getDurationWithDefault("REQUEST_TIMEOUT", defaultRequestTimeout),
		TestTimeout:     getDurationWithDefault("TEST_TIMEOUT", defaultTestTimeout),
		RequestRate:     getFloatWithDefault("REQUEST_RATE", 0),
		RequestBurst:    getIntWithDefault("REQUEST_BURST", 1),
		EmailDomain:     getStringWithDefault("TEST_EMAIL_DOMAIN", defaultEmailDomain),
		SkipIntegration: getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:    getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:     getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:    getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultTestConfig returns a configuration with defaults only, pointed at baseURL.
func DefaultTestConfig(baseURL string) *TestConfig {
	return &TestConfig{
		BaseURL:        strings.TrimSuffix(baseURL, "/"),
		RequestTimeout: defaultRequestTimeout,
		TestTimeout:    defaultTestTimeout,
		RequestBurst:   1,
		EmailDomain:    defaultEmailDomain,
	}
}

// UsesFake reports whether no remote service was configured.
func (c *TestConfig) UsesFake() bool {
	return c.BaseURL == ""
}

// Validate checks that all configured values are usable.
func (c *TestConfig) Validate() error {
	var problems []string

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("API_BASE_URL %q is not an absolute URL", c.BaseURL))
		}
	}

	if c.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}

	if c.TestTimeout <= 0 {
		problems = append(problems, "TEST_TIMEOUT must be positive")
	}

	if c.RequestRate < 0 {
		problems = append(problems, "REQUEST_RATE must not be negative")
	}

	if c.RequestBurst < 1 {
		problems = append(problems, "REQUEST_BURST must be at least 1")
	}

	if c.EmailDomain == "" {
		problems = append(problems, "TEST_EMAIL_DOMAIN must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getFloatWithDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatValue
}

func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env",    // From test/api directory
		"../../../.env", // From test/api/suites directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Load does not override variables that are already set.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
