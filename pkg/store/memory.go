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

// Package store holds the state of the fake Stellar Burgers service in memory.
package store

import (
	"encoding/hex"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spjmurray/go-util/pkg/set"

	"golang.org/x/crypto/bcrypt"
)

const (
	// ordersPerUser caps the personal order history like the real service.
	ordersPerUser = 50

	// firstOrderNumber keeps fake order numbers in a realistic range.
	firstOrderNumber = 10000
)

var objectIDRegex = regexp.MustCompile(`^[0-9a-f]{24}$`)

// MemoryStore holds all service state. It is safe for concurrent use and
// every write is visible to the next read.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[string]User
	emails        map[string]string
	refreshTokens map[string]refreshToken
	ingredients   []Ingredient
	orders        []Order
	nextNumber    int

	passwordCost    int
	refreshTokenTTL time.Duration
	now             func() time.Time
}

type refreshToken struct {
	userID  string
	expires time.Time
}

func (t refreshToken) expired(now time.Time) bool {
	return !t.expires.IsZero() && now.After(t.expires)
}

// Option customises a MemoryStore.
type Option func(*MemoryStore)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithPasswordCost sets the bcrypt cost, tests use bcrypt.MinCost.
func WithPasswordCost(cost int) Option {
	return func(s *MemoryStore) {
		s.passwordCost = cost
	}
}

// WithRefreshTokenTTL limits the lifetime of refresh tokens, zero means
// they never expire.
func WithRefreshTokenTTL(ttl time.Duration) Option {
	return func(s *MemoryStore) {
		s.refreshTokenTTL = ttl
	}
}

// WithIngredients replaces the seeded catalogue.
func WithIngredients(ingredients []Ingredient) Option {
	return func(s *MemoryStore) {
		s.ingredients = slices.Clone(ingredients)
	}
}

// New creates a store seeded with the default ingredient catalogue.
func New(options ...Option) *MemoryStore {
	s := &MemoryStore{
		users:         map[string]User{},
		emails:        map[string]string{},
		refreshTokens: map[string]refreshToken{},
		ingredients:   DefaultIngredients(),
		nextNumber:    firstOrderNumber,
		passwordCost:  bcrypt.DefaultCost,
		now:           time.Now,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// NewObjectID returns a random 24 character hex id.
func NewObjectID() string {
	id := uuid.New()

	return hex.EncodeToString(id[:12])
}

// IsObjectID reports whether id is syntactically a valid object id.
func IsObjectID(id string) bool {
	return objectIDRegex.MatchString(id)
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a new user. Emails are unique, case insensitively.
func (s *MemoryStore) CreateUser(email, password, name string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[emailKey(email)]; ok {
		return User{}, ErrUserExists
	}

	now := s.now()

	user := User{
		ID:           NewObjectID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.users[user.ID] = user
	s.emails[emailKey(email)] = user.ID

	return user, nil
}

// Authenticate checks a password and returns its user.
func (s *MemoryStore) Authenticate(email, password string) (User, error) {
	s.mu.RLock()
	id, ok := s.emails[emailKey(email)]
	user := s.users[id]
	s.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser returns a user by id.
func (s *MemoryStore) GetUser(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}

	return user, nil
}

// UpdateUser applies a partial profile update.
func (s *MemoryStore) UpdateUser(id string, update UserUpdate) (User, error) {
	var hash []byte

	if update.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.passwordCost)
		if err != nil {
			return User{}, fmt.Errorf("hashing password: %w", err)
		}

		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}

	if update.Email != nil && emailKey(*update.Email) != emailKey(user.Email) {
		if _, taken := s.emails[emailKey(*update.Email)]; taken {
			return User{}, ErrEmailTaken
		}

		delete(s.emails, emailKey(user.Email))
		s.emails[emailKey(*update.Email)] = id
		user.Email = *update.Email
	}

	if update.Name != nil {
		user.Name = *update.Name
	}

	if hash != nil {
		user.PasswordHash = hash
	}

	user.UpdatedAt = s.now()
	s.users[id] = user

	return user, nil
}

// DeleteUser removes a user, their refresh tokens and their orders.
func (s *MemoryStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}

	delete(s.users, id)
	delete(s.emails, emailKey(user.Email))

	for token, t := range s.refreshTokens {
		if t.userID == id {
			delete(s.refreshTokens, token)
		}
	}

	s.orders = slices.DeleteFunc(s.orders, func(order Order) bool {
		return order.OwnerID == id
	})

	return nil
}

// IssueRefreshToken creates a refresh token for a user.
func (s *MemoryStore) IssueRefreshToken(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.issueRefreshToken(userID)
}

func (s *MemoryStore) issueRefreshToken(userID string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]

	t := refreshToken{
		userID: userID,
	}

	if s.refreshTokenTTL > 0 {
		t.expires = s.now().Add(s.refreshTokenTTL)
	}

	s.refreshTokens[token] = t

	return token
}

// RotateRefreshToken consumes a refresh token and issues its replacement,
// returning the owning user id and the new token.
func (s *MemoryStore) RotateRefreshToken(token string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.refreshTokens[token]
	if !ok {
		return "", "", ErrTokenNotFound
	}

	delete(s.refreshTokens, token)

	if t.expired(s.now()) {
		return "", "", ErrTokenNotFound
	}

	return t.userID, s.issueRefreshToken(t.userID), nil
}

// RevokeRefreshToken invalidates a refresh token.
func (s *MemoryStore) RevokeRefreshToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.refreshTokens[token]; !ok {
		return ErrTokenNotFound
	}

	delete(s.refreshTokens, token)

	return nil
}

// Ingredients returns the catalogue in display order.
func (s *MemoryStore) Ingredients() []Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.ingredients)
}

// CreateOrder validates ingredient ids and places an order. An empty owner
// places an anonymous order.
func (s *MemoryStore) CreateOrder(ownerID string, ingredientIDs []string) (Order, error) {
	if len(ingredientIDs) == 0 {
		return Order{}, ErrNoIngredients
	}

	for _, id := range ingredientIDs {
		if !IsObjectID(id) {
			return Order{}, fmt.Errorf("%w: %q", ErrMalformedID, id)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	catalogue := make(map[string]Ingredient, len(s.ingredients))
	for _, ingredient := range s.ingredients {
		catalogue[ingredient.ID] = ingredient
	}

	known := set.New[string](slices.Collect(maps.Keys(catalogue))...)

	for id := range set.New[string](ingredientIDs...).Difference(known).All() {
		return Order{}, fmt.Errorf("%w: %s", ErrUnknownIngredient, id)
	}

	price := 0
	labels := make([]string, 0, len(ingredientIDs))

	for _, id := range ingredientIDs {
		ingredient := catalogue[id]
		price += ingredient.Price

		words := strings.Fields(ingredient.Name)
		if len(words) == 0 {
			continue
		}

		if !slices.Contains(labels, words[0]) {
			labels = append(labels, words[0])
		}
	}

	now := s.now()

	order := Order{
		ID:          NewObjectID(),
		Number:      s.nextNumber,
		Name:        strings.Join(append(labels, "бургер"), " "),
		Status:      "done",
		OwnerID:     ownerID,
		Ingredients: slices.Clone(ingredientIDs),
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.nextNumber++
	s.orders = append(s.orders, order)

	return order, nil
}

// OrdersFor returns the most recent orders of a user, oldest first.
func (s *MemoryStore) OrdersFor(ownerID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []Order

	for _, order := range s.orders {
		if order.OwnerID == ownerID {
			orders = append(orders, order)
		}
	}

	if len(orders) > ordersPerUser {
		orders = orders[len(orders)-ordersPerUser:]
	}

	return orders
}

// AllOrders returns the public order feed, newest first, with the total
// number of orders and the number placed today.
func (s *MemoryStore) AllOrders(limit int) ([]Order, int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	year, month, day := s.now().Date()
	today := 0

	for _, order := range s.orders {
		y, m, d := order.CreatedAt.Date()
		if y == year && m == month && d == day {
			today++
		}
	}

	orders := slices.Clone(s.orders)
	slices.Reverse(orders)

	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}

	return orders, s.nextNumber - firstOrderNumber, today
}
