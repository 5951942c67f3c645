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

	"github.com/stellar-burgers/api-tests/pkg/store"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type profileRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type orderRequest struct {
	Ingredients []string `json:"ingredients"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type user struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	envelope

	User         user   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	envelope

	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	envelope

	User user `json:"user"`
}

type ingredientsResponse struct {
	envelope

	Data []store.Ingredient `json:"data"`
}

type owner struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// placedOrder is the full order echoed to an authorised caller.
type placedOrder struct {
	ID          string             `json:"_id"`
	Ingredients []store.Ingredient `json:"ingredients"`
	Owner       owner              `json:"owner"`
	Status      string             `json:"status"`
	Name        string             `json:"name"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Number      int                `json:"number"`
	Price       int                `json:"price"`
}

// anonymousOrder is all an anonymous caller learns about its order.
type anonymousOrder struct {
	Number int `json:"number"`
}

type orderResponse struct {
	envelope

	Name  string `json:"name"`
	Order any    `json:"order"`
}

// listedOrder is an order as it appears in a feed, ingredients by id.
type listedOrder struct {
	ID          string    `json:"_id"`
	Ingredients []string  `json:"ingredients"`
	Status      string    `json:"status"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Number      int       `json:"number"`
}

type ordersResponse struct {
	envelope

	Orders     []listedOrder `json:"orders"`
	Total      int           `json:"total"`
	TotalToday int           `json:"totalToday"`
}

func convertUser(in store.User) user {
	return user{
		Email: in.Email,
		Name:  in.Name,
	}
}

func convertListedOrder(in store.Order) listedOrder {
	return listedOrder{
		ID:          in.ID,
		Ingredients: in.Ingredients,
		Status:      in.Status,
		Name:        in.Name,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
		Number:      in.Number,
	}
}

func convertListedOrders(in []store.Order) []listedOrder {
	out := make([]listedOrder, len(in))

	for i := range in {
		out[i] = convertListedOrder(in[i])
	}

	return out
}
