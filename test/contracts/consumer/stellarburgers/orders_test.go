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

package stellarburgers_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive
	"github.com/pact-foundation/pact-go/v2/consumer"
	"github.com/pact-foundation/pact-go/v2/matchers"

	"github.com/stellar-burgers/api-tests/test/api"
)

func orderIDs() interface{} {
	return matchers.EachLike(matchers.Regex(bunID, `^[0-9a-f]{24}$`), 1)
}

func isoTime() interface{} {
	return matchers.Regex("2024-04-30T13:48:18.123Z", `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`)
}

var _ = Describe("Order Contract", func() {
	var (
		pact *consumer.V4HTTPMockProvider
		ctx  context.Context
	)

	BeforeEach(func() {
		pact = newPact()
		ctx = context.Background()
	})

	Describe("Ingredients", func() {
		It("lists the catalogue", func() {
			pact.AddInteraction().
				Given("ingredients exist").
				UponReceiving("a request to list ingredients").
				WithRequest(http.MethodGet, "/api/ingredients").
				WillRespondWith(http.StatusOK, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(map[string]interface{}{
						"success": true,
						"data": matchers.EachLike(map[string]interface{}{
							"_id":   matchers.Regex(bunID, `^[0-9a-f]{24}$`),
							"name":  matchers.String("Флюоресцентная булка R2-D3"),
							"type":  matchers.Regex("bun", `^(bun|sauce|main)$`),
							"price": matchers.Integer(988),
						}, 1),
					})
				})

			test := func(config consumer.MockServerConfig) error {
				ids, err := api.NewFixtureManager(newClient(config), nil).FetchIngredientIDs(ctx)
				if err != nil {
					return err
				}

				Expect(ids).To(ContainElement(bunID))

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})
	})

	Describe("Order placement", func() {
		It("returns the order id to an authorised user", func() {
			pact.AddInteraction().
				Given("user is authorised").
				UponReceiving("an authorised request to place an order").
				WithRequest(http.MethodPost, "/api/orders", func(b *consumer.V4RequestBuilder) {
					b.Header("Authorization", bearer())
					b.JSONBody(map[string]interface{}{
						"ingredients": orderIDs(),
					})
				}).
				WillRespondWith(http.StatusOK, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(map[string]interface{}{
						"success": true,
						"name":    matchers.String("Флюоресцентный бургер"),
						"order": map[string]interface{}{
							"_id":    matchers.Regex("6630f6a297ede0001d068a3f", `^[0-9a-f]{24}$`),
							"number": matchers.Integer(41234),
							"status": matchers.String("done"),
							"price":  matchers.Integer(1078),
						},
					})
				})

			test := func(config consumer.MockServerConfig) error {
				resp, err := newClient(config).CreateOrder(ctx, accessToken, api.BuildOrder(bunID, sauceID))
				if err != nil {
					return err
				}

				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				Expect(resp.Text("order._id")).NotTo(BeEmpty())

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})

		It("returns only the order number to an anonymous caller", func() {
			pact.AddInteraction().
				Given("ingredients exist").
				UponReceiving("an anonymous request to place an order").
				WithRequest(http.MethodPost, "/api/orders", func(b *consumer.V4RequestBuilder) {
					b.JSONBody(map[string]interface{}{
						"ingredients": orderIDs(),
					})
				}).
				WillRespondWith(http.StatusOK, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(map[string]interface{}{
						"success": true,
						"name":    matchers.String("Флюоресцентный бургер"),
						"order": map[string]interface{}{
							"number": matchers.Integer(41235),
						},
					})
				})

			test := func(config consumer.MockServerConfig) error {
				resp, err := newClient(config).CreateOrder(ctx, "", api.BuildOrder(bunID))
				if err != nil {
					return err
				}

				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				_, ok := resp.Field("order._id")
				Expect(ok).To(BeFalse())

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})

		It("rejects an order without ingredients", func() {
			pact.AddInteraction().
				Given("ingredients exist").
				UponReceiving("a request to place an empty order").
				WithRequest(http.MethodPost, "/api/orders", func(b *consumer.V4RequestBuilder) {
					b.JSONBody(map[string]interface{}{
						"ingredients": []string{},
					})
				}).
				WillRespondWith(http.StatusBadRequest, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(errorBody("Ingredient ids must be provided"))
				})

			test := func(config consumer.MockServerConfig) error {
				resp, err := newClient(config).CreateOrder(ctx, "", api.BuildOrder())
				if err != nil {
					return err
				}

				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(resp.Message()).To(Equal("Ingredient ids must be provided"))

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})
	})

	Describe("Order listing", func() {
		It("lists the orders of the authorised user", func() {
			pact.AddInteraction().
				Given("user has placed an order").
				UponReceiving("a request to list the user's orders").
				WithRequest(http.MethodGet, "/api/orders", func(b *consumer.V4RequestBuilder) {
					b.Header("Authorization", bearer())
				}).
				WillRespondWith(http.StatusOK, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(map[string]interface{}{
						"success": true,
						"orders": matchers.EachLike(map[string]interface{}{
							"_id":         matchers.Regex("6630f6a297ede0001d068a3f", `^[0-9a-f]{24}$`),
							"ingredients": orderIDs(),
							"status":      matchers.String("done"),
							"number":      matchers.Integer(41234),
							"createdAt":   isoTime(),
							"updatedAt":   isoTime(),
						}, 1),
						"total":      matchers.Integer(41240),
						"totalToday": matchers.Integer(120),
					})
				})

			test := func(config consumer.MockServerConfig) error {
				resp, err := newClient(config).ListOrders(ctx, accessToken)
				if err != nil {
					return err
				}

				var orders api.OrdersResponse

				Expect(resp.Decode(&orders)).To(Succeed())
				Expect(orders.Orders).NotTo(BeEmpty())

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})

		It("rejects an anonymous listing", func() {
			pact.AddInteraction().
				Given("user has placed an order").
				UponReceiving("an anonymous request to list orders").
				WithRequest(http.MethodGet, "/api/orders").
				WillRespondWith(http.StatusUnauthorized, func(b *consumer.V4ResponseBuilder) {
					b.JSONBody(errorBody("You should be authorised"))
				})

			test := func(config consumer.MockServerConfig) error {
				resp, err := newClient(config).ListOrders(ctx, "")
				if err != nil {
					return err
				}

				Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))

				return nil
			}

			Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
		})
	})
})
