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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stellar-burgers/api-tests/test/api"
)

var _ = Describe("User Creation", func() {
	Context("When registering a new user", func() {
		Describe("Given unique credentials", func() {
			It("should create the user and return a token pair", func() {
				credentials := newCredentials().Build()

				resp, err := client.Register(ctx, api.RegistrationFor(credentials))
				Expect(err).NotTo(HaveOccurred())

				// Adopt the user so it is removed whatever happens below.
				fixtures.DeferRelease(ctx, api.SessionFromResponse(resp))

				api.ExpectSuccess(resp)
				api.ExpectField(resp, "user.email", credentials.Email)
				api.ExpectField(resp, "user.name", credentials.Name)
				api.ExpectFieldNotEmpty(resp, "accessToken")
				api.ExpectFieldNotEmpty(resp, "refreshToken")
				Expect(resp.Text("accessToken")).To(HavePrefix("Bearer "))
				api.ExpectContract(resp)
			})
		})

		Describe("Given an email that is already registered", func() {
			It("should reject the duplicate", func() {
				credentials := newCredentials().Build()
				fixtures.ProvisionUserWithCleanup(ctx, credentials)

				resp, err := client.Register(ctx, api.RegistrationFor(credentials))
				Expect(err).NotTo(HaveOccurred())

				fixtures.DeferRelease(ctx, api.SessionFromResponse(resp))

				api.ExpectFailure(resp, http.StatusForbidden, "User already exists")
				api.ExpectContract(resp)
			})

			It("should reject the duplicate whatever password and name are sent", func() {
				credentials := newCredentials().Build()
				fixtures.ProvisionUserWithCleanup(ctx, credentials)

				other := newCredentials().
					WithEmail(credentials.Email).
					WithPassword("different-" + credentials.Password).
					WithName("Different " + credentials.Name).
					Build()

				resp, err := client.Register(ctx, api.RegistrationFor(other))
				Expect(err).NotTo(HaveOccurred())

				fixtures.DeferRelease(ctx, api.SessionFromResponse(resp))

				api.ExpectFailure(resp, http.StatusForbidden, "User already exists")
			})
		})

		Describe("Given a required field is missing", func() {
			It("should reject a registration without a name", func() {
				credentials := newCredentials().WithoutName().Build()

				resp, err := client.Register(ctx, api.RegistrationFor(credentials))
				Expect(err).NotTo(HaveOccurred())

				fixtures.DeferRelease(ctx, api.SessionFromResponse(resp))

				api.ExpectFailure(resp, http.StatusForbidden, "Email, password and name are required fields")
			})

			It("should reject a registration without a password", func() {
				credentials := newCredentials().WithPassword("").Build()

				resp, err := client.Register(ctx, api.RegistrationFor(credentials))
				Expect(err).NotTo(HaveOccurred())

				fixtures.DeferRelease(ctx, api.SessionFromResponse(resp))

				api.ExpectFailure(resp, http.StatusForbidden, "Email, password and name are required fields")
			})
		})
	})
})
