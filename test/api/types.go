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
	"encoding/json"
	"sync/atomic"
	"time"
)

// Credentials identify a throwaway user. Name may be empty, in which case
// it is omitted from registration payloads.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// Session is the token pair of a provisioned user. It is owned by exactly
// one test and must be handed back to the fixture manager for release.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserEmail    string

	released atomic.Bool
}

// Empty is true when the session never held a user.
func (s *Session) Empty() bool {
	return s == nil || s.AccessToken == ""
}

// Released reports whether the user behind the session has been deleted.
func (s *Session) Released() bool {
	return s != nil && s.released.Load()
}

// RegistrationRequest is the body of POST /api/auth/register.
type RegistrationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenRequest is the body of POST /api/auth/logout and /api/auth/token.
type TokenRequest struct {
	Token string `json:"token"`
}

// OrderRequest is the body of POST /api/orders.
type OrderRequest struct {
	Ingredients []string `json:"ingredients"`
}

// ProfileUpdateRequest is the body of PATCH /api/auth/user, only set
// fields are sent.
type ProfileUpdateRequest struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// User is the user object embedded in auth responses.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// MessageResponse is the common envelope carried by every response.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	MessageResponse

	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is returned by GET and PATCH /api/auth/user.
type UserResponse struct {
	MessageResponse

	User User `json:"user"`
}

// TokenResponse is returned by POST /api/auth/token.
type TokenResponse struct {
	MessageResponse

	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Ingredient is one catalogue entry.
type Ingredient struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Proteins      int    `json:"proteins"`
	Fat           int    `json:"fat"`
	Carbohydrates int    `json:"carbohydrates"`
	Calories      int    `json:"calories"`
	Price         int    `json:"price"`
	Image         string `json:"image"`
	ImageMobile   string `json:"image_mobile"`
	ImageLarge    string `json:"image_large"`
	Version       int    `json:"__v"`
}

// IngredientsResponse is returned by GET /api/ingredients.
type IngredientsResponse struct {
	MessageResponse

	Data []Ingredient `json:"data"`
}

// Order is an order as reported to its owner. Anonymous orders only carry
// a number. Ingredients are ids in listings and full catalogue entries in
// the creation response, so they are left raw.
type Order struct {
	ID          string            `json:"_id,omitempty"`
	Number      int               `json:"number"`
	Name        string            `json:"name,omitempty"`
	Status      string            `json:"status,omitempty"`
	Ingredients []json.RawMessage `json:"ingredients,omitempty"`
	Price       int               `json:"price,omitempty"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

// OrderResponse is returned by POST /api/orders.
type OrderResponse struct {
	MessageResponse

	Name  string `json:"name"`
	Order Order  `json:"order"`
}

// OrdersResponse is returned by GET /api/orders and /api/orders/all.
type OrdersResponse struct {
	MessageResponse

	Orders     []Order `json:"orders"`
	Total      int     `json:"total"`
	TotalToday int     `json:"totalToday"`
}
