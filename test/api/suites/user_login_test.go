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

var _ = Describe("User Login", func() {
	Context("When logging in", func() {
		Describe("Given a registered user", func() {
			var credentials api.Credentials

			BeforeEach(func() {
				credentials = newCredentials().Build()
				fixtures.ProvisionUserWithCleanup(ctx, credentials)
			})

			It("should return the user and a fresh token pair", func() {
				resp, err := client.Login(ctx, api.LoginFor(credentials))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectSuccess(resp)
				api.ExpectField(resp, "user.email", credentials.Email)
				api.ExpectField(resp, "user.name", credentials.Name)
				api.ExpectFieldNotEmpty(resp, "accessToken")
				api.ExpectFieldNotEmpty(resp, "refreshToken")
				api.ExpectContract(resp)
			})

			It("should reject a wrong password", func() {
				resp, err := client.Login(ctx, api.BuildLogin(credentials.Email, "wrong-"+credentials.Password))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFailure(resp, http.StatusUnauthorized, "email or password are incorrect")
			})
		})

		Describe("Given credentials that were never registered", func() {
			It("should reject the login", func() {
				credentials := newCredentials().Build()

				resp, err := client.Login(ctx, api.LoginFor(credentials))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFailure(resp, http.StatusUnauthorized, "email or password are incorrect")
				api.ExpectContract(resp)
			})
		})
	})
})
