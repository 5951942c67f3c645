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

package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is raised when the test configuration is unusable.
	ErrInvalidConfig = errors.New("invalid test configuration")

	// ErrTransport is the root of all network level failures.
	ErrTransport = errors.New("transport failure")

	// ErrProvisioning is the root of all fixture setup failures.
	ErrProvisioning = errors.New("fixture provisioning failed")

	// ErrContract is raised when a response does not match the API description.
	ErrContract = errors.New("response violates API contract")
)

// TransportError means the request never produced an HTTP response, e.g.
// DNS failure, refused connection or timeout. Non-2xx responses are data
// and never produce this error.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// ProvisioningError means a fixture could not be created. The response is
// retained for diagnostics.
type ProvisioningError struct {
	Resource   string
	StatusCode int
	Body       []byte
	Reason     string
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning %s failed: %s (status: %d, body: %s)", e.Resource, e.Reason, e.StatusCode, string(e.Body))
}

func (e *ProvisioningError) Unwrap() error {
	return ErrProvisioning
}
