package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"k8s.io/utils/ptr"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	rand.Read(bytes)
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// UniqueEmail returns an address salted with random bytes and a timestamp
// so that parallel runs never collide in the shared user store.
func UniqueEmail(prefix, domain string) string {
	return fmt.Sprintf("%s-%d@%s", generateRandomName(prefix), time.Now().UnixMilli(), domain)
}

// CredentialsBuilder builds throwaway user credentials.
type CredentialsBuilder struct {
	credentials Credentials
}

// NewCredentials starts from a unique email with a fixed password and name.
func NewCredentials() *CredentialsBuilder {
	return &CredentialsBuilder{
		credentials: Credentials{
			Email:    UniqueEmail("test", defaultEmailDomain),
			Password: "password123",
			Name:     "Username",
		},
	}
}

// WithEmail sets the email.
func (b *CredentialsBuilder) WithEmail(email string) *CredentialsBuilder {
	b.credentials.Email = email
	return b
}

// WithDomain regenerates a unique email in the given domain.
func (b *CredentialsBuilder) WithDomain(domain string) *CredentialsBuilder {
	b.credentials.Email = UniqueEmail("test", domain)
	return b
}

func (b *CredentialsBuilder) WithPassword(password string) *CredentialsBuilder {
	b.credentials.Password = password
	return b
}

func (b *CredentialsBuilder) WithName(name string) *CredentialsBuilder {
	b.credentials.Name = name
	return b
}

// WithoutName drops the name, producing an incomplete registration.
func (b *CredentialsBuilder) WithoutName() *CredentialsBuilder {
	b.credentials.Name = ""
	return b
}

// Build returns the completed credentials.
func (b *CredentialsBuilder) Build() Credentials {
	return b.credentials
}

// BuildRegistration maps credentials fields to a registration payload.
func BuildRegistration(email, password, name string) RegistrationRequest {
	return RegistrationRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}
}

// RegistrationFor is BuildRegistration over a Credentials value.
func RegistrationFor(credentials Credentials) RegistrationRequest {
	return BuildRegistration(credentials.Email, credentials.Password, credentials.Name)
}

func BuildLogin(email, password string) LoginRequest {
	return LoginRequest{
		Email:    email,
		Password: password,
	}
}

// LoginFor is BuildLogin over a Credentials value.
func LoginFor(credentials Credentials) LoginRequest {
	return BuildLogin(credentials.Email, credentials.Password)
}

// BuildOrder returns an order for the ingredients in the given order. No
// ingredients yields an explicit empty list rather than null.
func BuildOrder(ingredientIDs ...string) OrderRequest {
	ids := make([]string, len(ingredientIDs))
	copy(ids, ingredientIDs)

	return OrderRequest{
		Ingredients: ids,
	}
}

func BuildTokenRequest(refreshToken string) TokenRequest {
	return TokenRequest{
		Token: refreshToken,
	}
}

// ProfileOption sets one field of a profile update.
type ProfileOption func(*ProfileUpdateRequest)

func WithEmail(email string) ProfileOption {
	return func(r *ProfileUpdateRequest) {
		r.Email = ptr.To(email)
	}
}

func WithName(name string) ProfileOption {
	return func(r *ProfileUpdateRequest) {
		r.Name = ptr.To(name)
	}
}

func WithPassword(password string) ProfileOption {
	return func(r *ProfileUpdateRequest) {
		r.Password = ptr.To(password)
	}
}

// BuildProfileUpdate returns a partial profile update, only the given
// fields are serialised.
func BuildProfileUpdate(options ...ProfileOption) ProfileUpdateRequest {
	var request ProfileUpdateRequest

	for _, option := range options {
		option(&request)
	}

	return request
}
