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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"

	"go.uber.org/zap"
)

// FixtureManager provisions throwaway users and deletes them again.
type FixtureManager struct {
	client *APIClient
	logger *zap.Logger
}

// NewFixtureManager creates a fixture manager issuing requests through client.
func NewFixtureManager(client *APIClient, logger *zap.Logger) *FixtureManager {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FixtureManager{
		client: client,
		logger: logger,
	}
}

// ProvisionUser registers a new user. Anything other than a 200 with a
// token pair is a *ProvisioningError carrying the response body.
func (m *FixtureManager) ProvisionUser(ctx context.Context, credentials Credentials) (*Session, error) {
	resp, err := m.client.Register(ctx, RegistrationFor(credentials))
	if err != nil {
		return nil, fmt.Errorf("registering user %s: %w", credentials.Email, err)
	}

	return m.sessionFromAuth(resp, "user "+credentials.Email, credentials.Email)
}

// LoginUser logs an existing user in and returns a session for it. The
// session is independent of any other session for the same user but
// releasing either deletes the user.
func (m *FixtureManager) LoginUser(ctx context.Context, credentials Credentials) (*Session, error) {
	resp, err := m.client.Login(ctx, LoginFor(credentials))
	if err != nil {
		return nil, fmt.Errorf("logging in user %s: %w", credentials.Email, err)
	}

	return m.sessionFromAuth(resp, "login for "+credentials.Email, credentials.Email)
}

func (m *FixtureManager) sessionFromAuth(resp *Response, resource, email string) (*Session, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, &ProvisioningError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Reason:     "unexpected status code",
		}
	}

	var auth AuthResponse
	if err := resp.Decode(&auth); err != nil {
		return nil, &ProvisioningError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Reason:     err.Error(),
		}
	}

	if auth.AccessToken == "" || auth.RefreshToken == "" {
		return nil, &ProvisioningError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Reason:     "token pair missing from response",
		}
	}

	if auth.User.Email != "" {
		email = auth.User.Email
	}

	m.logger.Debug("provisioned session", zap.String("email", email), zap.String("traceID", resp.TraceID))

	return &Session{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		UserEmail:    email,
	}, nil
}

// Release deletes the user behind the session. A nil, empty or already
// released session is a no-op. An access token the service rejects is
// refreshed once and the delete retried, so an expired session still removes
// its user. The session counts as released once the user is deleted or the
// service proves it gone; only a transport failure is returned and the
// release may then be retried.
func (m *FixtureManager) Release(ctx context.Context, session *Session) error {
	if session.Empty() {
		return nil
	}

	if !session.released.CompareAndSwap(false, true) {
		return nil
	}

	if err := m.release(ctx, session); err != nil {
		session.released.Store(false)

		return err
	}

	return nil
}

func (m *FixtureManager) release(ctx context.Context, session *Session) error {
	resp, err := m.client.DeleteUser(ctx, session.AccessToken)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", session.UserEmail, err)
	}

	if rejectedToken(resp.StatusCode) && session.RefreshToken != "" {
		refreshed, err := m.refresh(ctx, session)
		if err != nil {
			return err
		}

		if !refreshed {
			return nil
		}

		if resp, err = m.client.DeleteUser(ctx, session.AccessToken); err != nil {
			return fmt.Errorf("deleting user %s: %w", session.UserEmail, err)
		}
	}

	if resp.StatusCode != http.StatusAccepted {
		m.logger.Warn("unexpected status deleting user",
			zap.String("email", session.UserEmail),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body),
			zap.String("traceID", resp.TraceID))

		return nil
	}

	m.logger.Debug("released session", zap.String("email", session.UserEmail))

	return nil
}

// refresh swaps the session's token pair for a fresh one. A refresh token the
// service rejects means the user, and with it every token, is already gone.
func (m *FixtureManager) refresh(ctx context.Context, session *Session) (bool, error) {
	resp, err := m.client.RefreshToken(ctx, session.RefreshToken)
	if err != nil {
		return false, fmt.Errorf("refreshing token for %s: %w", session.UserEmail, err)
	}

	var tokens TokenResponse

	if resp.StatusCode != http.StatusOK || resp.Decode(&tokens) != nil || tokens.AccessToken == "" {
		m.logger.Debug("refresh rejected, user already gone",
			zap.String("email", session.UserEmail),
			zap.Int("status", resp.StatusCode),
			zap.String("traceID", resp.TraceID))

		return false, nil
	}

	session.AccessToken = tokens.AccessToken

	if tokens.RefreshToken != "" {
		session.RefreshToken = tokens.RefreshToken
	}

	return true, nil
}

// rejectedToken is true for the statuses the service uses for an access
// token that is missing, expired or no longer resolves to a user.
func rejectedToken(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// FetchIngredientIDs returns the ids of the live ingredient catalogue in
// catalogue order.
func (m *FixtureManager) FetchIngredientIDs(ctx context.Context) ([]string, error) {
	resp, err := m.client.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ingredients: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProvisioningError{
			Resource:   "ingredient catalogue",
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Reason:     "unexpected status code",
		}
	}

	var catalogue IngredientsResponse
	if err := resp.Decode(&catalogue); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(catalogue.Data))

	for _, ingredient := range catalogue.Data {
		ids = append(ids, ingredient.ID)
	}

	return ids, nil
}

// ProvisionUserWithCleanup provisions a user for the current spec and schedules
// its release. Provisioning failures fail the spec before its body runs; release
// failures are only logged so they never mask the spec's own outcome.
func (m *FixtureManager) ProvisionUserWithCleanup(ctx context.Context, credentials Credentials) *Session {
	GinkgoHelper()

	session, err := m.ProvisionUser(ctx, credentials)
	if err != nil {
		Fail(fmt.Sprintf("Failed to provision user %s: %v", credentials.Email, err))
	}

	GinkgoWriter.Printf("Provisioned user: %s\n", session.UserEmail)

	m.DeferRelease(ctx, session)

	return session
}

// DeferRelease schedules release of a session obtained outside of
// ProvisionUserWithCleanup, e.g. by registering directly in a spec body.
func (m *FixtureManager) DeferRelease(ctx context.Context, session *Session) {
	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func() {
		if err := m.Release(ctx, session); err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete user %s: %v\n", session.UserEmail, err)
			return
		}

		if !session.Empty() {
			GinkgoWriter.Printf("Successfully deleted user: %s\n", session.UserEmail)
		}
	})
}

// SessionFromResponse adopts the token pair of a register or login response
// made directly by a spec. A response without tokens yields an empty session,
// which is safe to release.
func SessionFromResponse(resp *Response) *Session {
	return &Session{
		AccessToken:  resp.Text("accessToken"),
		RefreshToken: resp.Text("refreshToken"),
		UserEmail:    resp.Text("user.email"),
	}
}

// FetchIngredientIDsOrFail is FetchIngredientIDs for use inside specs.
func (m *FixtureManager) FetchIngredientIDsOrFail(ctx context.Context) []string {
	GinkgoHelper()

	ids, err := m.FetchIngredientIDs(ctx)
	if err != nil {
		Fail(fmt.Sprintf("Failed to fetch ingredient ids: %v", err))
	}

	if len(ids) == 0 {
		Fail("Ingredient catalogue is empty")
	}

	return ids
}
