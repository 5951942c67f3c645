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

var _ = Describe("User Modification", func() {
	var (
		credentials api.Credentials
		session     *api.Session
	)

	BeforeEach(func() {
		credentials = newCredentials().Build()
		session = fixtures.ProvisionUserWithCleanup(ctx, credentials)
	})

	Context("When reading the profile", func() {
		It("should return the authorised user", func() {
			resp, err := client.GetUser(ctx, session.AccessToken)
			Expect(err).NotTo(HaveOccurred())

			api.ExpectSuccess(resp)
			api.ExpectField(resp, "user.email", credentials.Email)
			api.ExpectField(resp, "user.name", credentials.Name)
			api.ExpectContract(resp)
		})

		It("should reject an anonymous caller", func() {
			resp, err := client.GetUser(ctx, "")
			Expect(err).NotTo(HaveOccurred())

			api.ExpectFailure(resp, http.StatusUnauthorized, "You should be authorised")
		})
	})

	Context("When updating the profile", func() {
		Describe("Given an authorised user", func() {
			It("should change the email", func() {
				email := api.UniqueEmail("updated", config.EmailDomain)

				resp, err := client.UpdateUser(ctx, session.AccessToken, api.BuildProfileUpdate(api.WithEmail(email)))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectSuccess(resp)
				api.ExpectField(resp, "user.email", email)
				api.ExpectField(resp, "user.name", credentials.Name)
				api.ExpectContract(resp)
			})

			It("should change the name", func() {
				resp, err := client.UpdateUser(ctx, session.AccessToken, api.BuildProfileUpdate(api.WithName("Updated Name")))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectSuccess(resp)
				api.ExpectField(resp, "user.name", "Updated Name")
				api.ExpectField(resp, "user.email", credentials.Email)
			})

			It("should change the password", func() {
				resp, err := client.UpdateUser(ctx, session.AccessToken, api.BuildProfileUpdate(api.WithPassword("new-password")))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectSuccess(resp)

				resp, err = client.Login(ctx, api.BuildLogin(credentials.Email, "new-password"))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectSuccess(resp)
			})

			It("should reject an email that belongs to another user", func() {
				other := newCredentials().Build()
				fixtures.ProvisionUserWithCleanup(ctx, other)

				resp, err := client.UpdateUser(ctx, session.AccessToken, api.BuildProfileUpdate(api.WithEmail(other.Email)))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFailure(resp, http.StatusForbidden, "User with such email already exists")
				api.ExpectContract(resp)
			})
		})

		Describe("Given no authorisation", func() {
			It("should reject the update", func() {
				resp, err := client.UpdateUser(ctx, "", api.BuildProfileUpdate(api.WithName("Updated Name")))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFailure(resp, http.StatusUnauthorized, "You should be authorised")
				api.ExpectContract(resp)
			})
		})
	})

	Context("When managing tokens", func() {
		It("should log the user out", func() {
			resp, err := client.Logout(ctx, session.RefreshToken)
			Expect(err).NotTo(HaveOccurred())

			api.ExpectSuccess(resp)
			api.ExpectField(resp, "message", "Successful logout")
			api.ExpectContract(resp)
		})

		It("should refresh the access token", func() {
			resp, err := client.RefreshToken(ctx, session.RefreshToken)
			Expect(err).NotTo(HaveOccurred())

			api.ExpectSuccess(resp)
			api.ExpectFieldNotEmpty(resp, "accessToken")
			api.ExpectFieldNotEmpty(resp, "refreshToken")
			api.ExpectContract(resp)

			profile, err := client.GetUser(ctx, resp.Text("accessToken"))
			Expect(err).NotTo(HaveOccurred())

			api.ExpectSuccess(profile)
		})
	})
})

var _ = Describe("User Release", func() {
	Context("When the fixture manager releases a user", func() {
		It("should be idempotent and leave the user unable to log in", func() {
			credentials := newCredentials().Build()

			session, err := fixtures.ProvisionUser(ctx, credentials)
			Expect(err).NotTo(HaveOccurred())

			fixtures.DeferRelease(ctx, session)

			Expect(fixtures.Release(ctx, session)).To(Succeed())
			Expect(session.Released()).To(BeTrue())
			Expect(fixtures.Release(ctx, session)).To(Succeed())

			resp, err := client.Login(ctx, api.LoginFor(credentials))
			Expect(err).NotTo(HaveOccurred())

			api.ExpectFailure(resp, http.StatusUnauthorized, "email or password are incorrect")
		})

		It("should treat an empty session as a no-op", func() {
			Expect(fixtures.Release(ctx, nil)).To(Succeed())
			Expect(fixtures.Release(ctx, &api.Session{})).To(Succeed())
		})
	})
})
