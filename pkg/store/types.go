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

package store

import (
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrEmailTaken         = errors.New("email belongs to another user")
	ErrInvalidCredentials = errors.New("email or password are incorrect")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenNotFound      = errors.New("refresh token not found")
	ErrNoIngredients      = errors.New("no ingredients provided")
	ErrMalformedID        = errors.New("malformed object id")
	ErrUnknownIngredient  = errors.New("unknown ingredient")
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries the profile fields to change, nil means unchanged.
type UserUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

// Ingredient is a catalogue entry, serialised as the service does.
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

// Order is a placed order. Anonymous orders have no owner.
type Order struct {
	ID          string
	Number      int
	Name        string
	Status      string
	OwnerID     string
	Ingredients []string
	Price       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
