/*
Copyright 2024-2025 the Unikorn Authors.
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

//nolint:revive
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/stellar-burgers/api-tests/pkg/store"
)

const (
	feedLimit = 50

	msgRequiredFields   = "Email, password and name are required fields"
	msgUserExists       = "User already exists"
	msgBadCredentials   = "email or password are incorrect"
	msgUnauthorised     = "You should be authorised"
	msgEmailTaken       = "User with such email already exists"
	msgTokenRequired    = "Token required"
	msgTokenInvalid     = "Token is invalid"
	msgLoggedOut        = "Successful logout"
	msgUserRemoved      = "User successfully removed"
	msgNoIngredients    = "Ingredient ids must be provided"
	msgIncorrectIDs     = "One or more ids provided are incorrect"
	msgMalformedRequest = "Malformed request body"
	msgInternalError    = "Internal Server Error"
	msgTokenExpired     = "jwt expired"
)

type Handler struct {
	// store holds users, tokens and orders.
	store *store.MemoryStore

	// tokens issues and verifies access tokens.
	tokens *Tokens

	logger *zap.Logger
}

var ErrMissingSecret = errors.New("token secret must be set")

func New(s *store.MemoryStore, options *Options, logger *zap.Logger) (*Handler, error) {
	if options.TokenSecret == "" {
		return nil, ErrMissingSecret
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Handler{
		store:  s,
		tokens: NewTokens(options.TokenSecret, options.AccessTokenTTL),
		logger: logger,
	}

	return h, nil
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to write response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, envelope{Message: message})
}

// readJSONBody decodes the request body, writing a 400 on failure.
func (h *Handler) readJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.Debug("malformed request body", zap.String("path", r.URL.Path), zap.Error(err))
		h.writeError(w, r, http.StatusBadRequest, msgMalformedRequest)

		return false
	}

	return true
}

// internalError hides the cause from the caller, as the public service does.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, msgInternalError, http.StatusInternalServerError)
}

// authenticate resolves the caller from the Authorization header. Failures
// are written to the response.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (store.User, bool) {
	userID, err := h.tokens.Verify(r.Header.Get("Authorization"))
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			h.writeError(w, r, http.StatusForbidden, msgTokenExpired)
			return store.User{}, false
		}

		h.writeError(w, r, http.StatusUnauthorized, msgUnauthorised)

		return store.User{}, false
	}

	u, err := h.store.GetUser(userID)
	if err != nil {
		h.writeError(w, r, http.StatusUnauthorized, msgUnauthorised)
		return store.User{}, false
	}

	return u, true
}

// issue creates a fresh token pair.
func (h *Handler) issue(userID string) (string, string, error) {
	accessToken, err := h.tokens.Issue(userID)
	if err != nil {
		return "", "", err
	}

	return accessToken, h.store.IssueRefreshToken(userID), nil
}

func (h *Handler) writeAuth(w http.ResponseWriter, r *http.Request, u store.User) {
	accessToken, refreshToken, err := h.issue(u.ID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	result := &authResponse{
		envelope:     envelope{Success: true},
		User:         convertUser(u),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	h.setUncacheable(w)
	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) PostApiAuthRegister(w http.ResponseWriter, r *http.Request) {
	request := &credentialsRequest{}

	if !h.readJSONBody(w, r, request) {
		return
	}

	if request.Email == "" || request.Password == "" || request.Name == "" {
		h.writeError(w, r, http.StatusForbidden, msgRequiredFields)
		return
	}

	u, err := h.store.CreateUser(request.Email, request.Password, request.Name)
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			h.writeError(w, r, http.StatusForbidden, msgUserExists)
			return
		}

		h.internalError(w, r, err)

		return
	}

	h.logger.Debug("user registered", zap.String("id", u.ID))

	h.writeAuth(w, r, u)
}

func (h *Handler) PostApiAuthLogin(w http.ResponseWriter, r *http.Request) {
	request := &credentialsRequest{}

	if !h.readJSONBody(w, r, request) {
		return
	}

	u, err := h.store.Authenticate(request.Email, request.Password)
	if err != nil {
		h.writeError(w, r, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	h.writeAuth(w, r, u)
}

func (h *Handler) PostApiAuthLogout(w http.ResponseWriter, r *http.Request) {
	request := &tokenRequest{}

	if !h.readJSONBody(w, r, request) {
		return
	}

	if request.Token == "" {
		h.writeError(w, r, http.StatusNotFound, msgTokenRequired)
		return
	}

	if err := h.store.RevokeRefreshToken(request.Token); err != nil {
		h.writeError(w, r, http.StatusNotFound, msgTokenRequired)
		return
	}

	h.writeJSON(w, r, http.StatusOK, envelope{Success: true, Message: msgLoggedOut})
}

func (h *Handler) PostApiAuthToken(w http.ResponseWriter, r *http.Request) {
	request := &tokenRequest{}

	if !h.readJSONBody(w, r, request) {
		return
	}

	if request.Token == "" {
		h.writeError(w, r, http.StatusUnauthorized, msgTokenInvalid)
		return
	}

	userID, refreshToken, err := h.store.RotateRefreshToken(request.Token)
	if err != nil {
		h.writeError(w, r, http.StatusUnauthorized, msgTokenInvalid)
		return
	}

	accessToken, err := h.tokens.Issue(userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	result := &tokenResponse{
		envelope:     envelope{Success: true},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	h.setUncacheable(w)
	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) GetApiAuthUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	h.setUncacheable(w)
	h.writeJSON(w, r, http.StatusOK, &userResponse{envelope: envelope{Success: true}, User: convertUser(u)})
}

// nonEmpty treats an empty string like an absent field.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}

	return s
}

func (h *Handler) PatchApiAuthUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	request := &profileRequest{}

	if !h.readJSONBody(w, r, request) {
		return
	}

	update := store.UserUpdate{
		Email:    nonEmpty(request.Email),
		Name:     nonEmpty(request.Name),
		Password: nonEmpty(request.Password),
	}

	updated, err := h.store.UpdateUser(u.ID, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			h.writeError(w, r, http.StatusForbidden, msgEmailTaken)
		case errors.Is(err, store.ErrUserNotFound):
			h.writeError(w, r, http.StatusUnauthorized, msgUnauthorised)
		default:
			h.internalError(w, r, err)
		}

		return
	}

	h.setUncacheable(w)
	h.writeJSON(w, r, http.StatusOK, &userResponse{envelope: envelope{Success: true}, User: convertUser(updated)})
}

func (h *Handler) DeleteApiAuthUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteUser(u.ID); err != nil {
		h.writeError(w, r, http.StatusUnauthorized, msgUnauthorised)
		return
	}

	h.logger.Debug("user removed", zap.String("id", u.ID))

	h.setUncacheable(w)
	h.writeJSON(w, r, http.StatusAccepted, envelope{Success: true, Message: msgUserRemoved})
}

func (h *Handler) GetApiIngredients(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, &ingredientsResponse{envelope: envelope{Success: true}, Data: h.store.Ingredients()})
}

// orderOwner returns the caller of an order placement. Ordering does not
// require authorisation, so any token problem means an anonymous order.
func (h *Handler) orderOwner(r *http.Request) (store.User, bool) {
	userID, err := h.tokens.Verify(r.Header.Get("Authorization"))
	if err != nil {
		return store.User{}, false
	}

	u, err := h.store.GetUser(userID)
	if err != nil {
		return store.User{}, false
	}

	return u, true
}

func (h *Handler) convertPlacedOrder(u store.User, order store.Order) *placedOrder {
	catalogue := map[string]store.Ingredient{}

	for _, ingredient := range h.store.Ingredients() {
		catalogue[ingredient.ID] = ingredient
	}

	ingredients := make([]store.Ingredient, len(order.Ingredients))

	for i, id := range order.Ingredients {
		ingredients[i] = catalogue[id]
	}

	return &placedOrder{
		ID:          order.ID,
		Ingredients: ingredients,
		Owner: owner{
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		Status:    order.Status,
		Name:      order.Name,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
		Number:    order.Number,
		Price:     order.Price,
	}
}

func (h *Handler) PostApiOrders(w http.ResponseWriter, r *http.Request) {
	request := &orderRequest{}

	if !h.readJSONBody(w, r, request) {
		return
	}

	u, authorised := h.orderOwner(r)

	order, err := h.store.CreateOrder(u.ID, request.Ingredients)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoIngredients):
			h.writeError(w, r, http.StatusBadRequest, msgNoIngredients)
		case errors.Is(err, store.ErrUnknownIngredient):
			h.writeError(w, r, http.StatusBadRequest, msgIncorrectIDs)
		default:
			h.internalError(w, r, err)
		}

		return
	}

	result := &orderResponse{
		envelope: envelope{Success: true},
		Name:     order.Name,
		Order:    &anonymousOrder{Number: order.Number},
	}

	if authorised {
		result.Order = h.convertPlacedOrder(u, order)
	}

	h.setUncacheable(w)
	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) GetApiOrders(w http.ResponseWriter, r *http.Request) {
	u, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	_, total, today := h.store.AllOrders(0)

	result := &ordersResponse{
		envelope:   envelope{Success: true},
		Orders:     convertListedOrders(h.store.OrdersFor(u.ID)),
		Total:      total,
		TotalToday: today,
	}

	h.setUncacheable(w)
	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) GetApiOrdersAll(w http.ResponseWriter, r *http.Request) {
	orders, total, today := h.store.AllOrders(feedLimit)

	result := &ordersResponse{
		envelope:   envelope{Success: true},
		Orders:     convertListedOrders(orders),
		Total:      total,
		TotalToday: today,
	}

	h.setUncacheable(w)
	h.writeJSON(w, r, http.StatusOK, result)
}
