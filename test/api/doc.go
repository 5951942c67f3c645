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

// Package api provides integration test utilities for the Stellar Burgers API.
//
// # Harness
//
// Scenario code composes four pieces:
//
//   - APIClient sends requests and returns every HTTP response as data. Only
//     failures to get a response at all surface as a *TransportError. Its
//     HTTPDoer is the seam at which the remote service is replaced in unit
//     tests.
//   - Request builders (BuildRegistration, BuildLogin, BuildOrder,
//     BuildProfileUpdate) map semantic fields to payloads without side effects.
//   - FixtureManager registers a throwaway user per test and deletes it in a
//     DeferCleanup, whatever the outcome of the test.
//   - The assertion helpers (ExpectStatus, ExpectField, ExpectFailure, ...)
//     extract fields by dot path, e.g. "order._id", so specs stay declarative.
//
// # Target
//
// The suites run against the service at API_BASE_URL. When it is unset they
// start the in-process fake from pkg/server, so a plain "go test ./..." never
// touches the shared public service.
package api
