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

var _ = Describe("Order Creation", func() {
	var ingredients []string

	BeforeEach(func() {
		ingredients = fixtures.FetchIngredientIDsOrFail(ctx)
	})

	Context("When placing an order", func() {
		Describe("Given an authorised user", func() {
			var session *api.Session

			BeforeEach(func() {
				session = fixtures.ProvisionUserWithCleanup(ctx, newCredentials().Build())
			})

			It("should create the order with an id", func() {
				resp, err := client.CreateOrder(ctx, session.AccessToken, api.BuildOrder(ingredients[0], ingredients[1]))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectSuccess(resp)
				api.ExpectFieldNotEmpty(resp, "name")
				api.ExpectFieldNotEmpty(resp, "order._id")
				api.ExpectFieldNotEmpty(resp, "order.number")
				api.ExpectContract(resp)
			})

			It("should reject an order without ingredients", func() {
				resp, err := client.CreateOrder(ctx, session.AccessToken, api.BuildOrder())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFailure(resp, http.StatusBadRequest, "Ingredient ids must be provided")
				api.ExpectContract(resp)
			})

			It("should fail on a malformed ingredient id", func() {
				resp, err := client.CreateOrder(ctx, session.AccessToken, api.BuildOrder("invalid-hash"))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusInternalServerError)
			})
		})

		Describe("Given an anonymous caller", func() {
			It("should accept the order without exposing an id", func() {
				resp, err := client.CreateOrder(ctx, "", api.BuildOrder(ingredients[0]))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectSuccess(resp)
				api.ExpectFieldNotEmpty(resp, "order.number")
				api.ExpectFieldAbsent(resp, "order._id")
				api.ExpectContract(resp)
			})

			It("should reject an order without ingredients", func() {
				resp, err := client.CreateOrder(ctx, "", api.BuildOrder())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFailure(resp, http.StatusBadRequest, "Ingredient ids must be provided")
			})

			It("should fail on a malformed ingredient id", func() {
				resp, err := client.CreateOrder(ctx, "", api.BuildOrder("invalid-hash"))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusInternalServerError)
				api.ExpectContract(resp)
			})
		})
	})
})
