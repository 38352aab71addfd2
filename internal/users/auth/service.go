// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/sec"
	"github.com/taibuivan/bookhub/internal/platform/validate"
	"github.com/taibuivan/bookhub/pkg/uuidv7"
)

// # Contracts & Errors

var (
	// ErrInvalidCredentials does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")

	// ErrEmailTaken is returned by Register when the email already exists.
	ErrEmailTaken = apperr.Conflict("Email is already registered")

	// ErrNoSession means the token names no live session.
	ErrNoSession = apperr.Unauthorized("No active session")
)

// TokenProvider signs and parses session tokens.
type TokenProvider interface {
	GenerateSessionToken(sessionID, userID, userName string, timeToLive time.Duration) (string, error)
	ParseToken(token string) (*sec.AuthClaims, error)
}

// BookLookup answers whether a book id exists in the catalogue.
type BookLookup interface {
	BookExists(context context.Context, bookID string) (bool, error)
}

// Service implements the session store use cases.
type Service struct {
	users      UserRepository
	sessions   SessionRepository
	tokens     TokenProvider
	scheme     sec.CredentialScheme
	books      BookLookup
	sessionTTL time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// Options carries the [Service] dependencies.
type Options struct {
	Users      UserRepository
	Sessions   SessionRepository
	Tokens     TokenProvider
	Scheme     sec.CredentialScheme
	Books      BookLookup
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(options Options) *Service {
	return &Service{
		users:      options.Users,
		sessions:   options.Sessions,
		tokens:     options.Tokens,
		scheme:     options.Scheme,
		books:      options.Books,
		sessionTTL: options.SessionTTL,
		logger:     options.Logger,
		now:        time.Now,
	}
}

// LoginResult is an opened session.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *Profile  `json:"user"`
}

// # Authentication Flow

/*
Login opens a session when a stored user has exactly this email and password.

Parameters:
  - context: context.Context
  - email: string (Exact, case-sensitive match)
  - password: string

Returns:
  - *LoginResult: Token and the password-free profile
  - error: ErrInvalidCredentials or storage failures
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginResult, error) {
	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	if !service.scheme.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	result, err := service.openSession(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return result, nil
}

// RegisterInput holds the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register appends a new user and opens a session for them.

Description: The email must not exist; on conflict nothing is mutated.
The new user has an empty purchase list and a time-ordered id.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *LoginResult: Token and profile of the new user
  - error: VALIDATION_ERROR, ErrEmailTaken or storage failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*LoginResult, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.users.FindByEmail(context, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	stored, err := service.scheme.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:             uuidv7.New(),
		Name:           strings.TrimSpace(input.Name),
		Email:          input.Email,
		Password:       stored,
		PurchasedBooks: []string{},
	}

	if err := service.users.Create(context, user); err != nil {
		// A concurrent registration may win the race after the lookup.
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))

	return service.openSession(context, user)
}

// openSession stores a session record and signs a token naming it.
func (service *Service) openSession(context context.Context, user *User) (*LoginResult, error) {
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		UserName:  user.Name,
		CreatedAt: service.now(),
	}

	if err := service.sessions.Create(context, session, service.sessionTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	token, err := service.tokens.GenerateSessionToken(session.ID, user.ID, user.Name, service.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.CreatedAt.Add(service.sessionTTL),
		User:      user.Profile(),
	}, nil
}

// # Session Management

/*
Logout closes the session named by token.

Description: Idempotent. Unknown, expired or already closed tokens succeed.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Storage failures only
*/
func (service *Service) Logout(context context.Context, token string) error {
	claims, err := service.tokens.ParseToken(token)
	if err != nil {
		return nil
	}

	if err := service.sessions.Delete(context, claims.SessionID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	service.logger.Info("user_logged_out", slog.String("user_id", claims.UserID))
	return nil
}

/*
VerifyToken resolves a token to the claims of its live session.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.AuthClaims: Claims of an open session
  - error: ErrNoSession for bad, expired or closed tokens
*/
func (service *Service) VerifyToken(context context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.ParseToken(token)
	if err != nil {
		return nil, ErrNoSession
	}

	session, err := service.sessions.Find(context, claims.SessionID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("auth_service_session_lookup_failed: %w", err)
	}

	if session.UserID != claims.UserID {
		return nil, ErrNoSession
	}

	return claims, nil
}

/*
Current returns the profile held by the session named by token.

Returns:
  - *Profile: The logged-in user
  - error: ErrNoSession when nobody is logged in under this token
*/
func (service *Service) Current(context context.Context, token string) (*Profile, error) {
	claims, err := service.VerifyToken(context, token)
	if err != nil {
		return nil, err
	}
	return service.Profile(context, claims.UserID)
}

// Profile returns the password-free projection of a stored user.
func (service *Service) Profile(context context.Context, userID string) (*Profile, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("auth_service_profile_failed: %w", err)
	}
	return user.Profile(), nil
}

// # Purchases

/*
Purchase appends a catalogue book to the buyer's purchase list.

Description: No payment happens. Buying a book twice leaves a single entry.

Parameters:
  - context: context.Context
  - buyer: *sec.Actor (nil fails with LOGIN_REQUIRED)
  - bookID: string

Returns:
  - *Profile: Updated profile
  - error: LOGIN_REQUIRED, VALIDATION_ERROR, NOT_FOUND or storage failures
*/
func (service *Service) Purchase(context context.Context, buyer *sec.Actor, bookID string) (*Profile, error) {
	if err := sec.RequireActor(buyer); err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).RequiredMsg(FieldBookID, bookID, "Please select a book").Err(); err != nil {
		return nil, err
	}

	exists, err := service.books.BookExists(context, bookID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_purchase_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Book")
	}

	if err := service.users.AddPurchase(context, buyer.ID, bookID); err != nil {
		return nil, err
	}

	service.logger.Info("book_purchased",
		slog.String("user_id", buyer.ID),
		slog.String("book_id", bookID),
	)

	return service.Profile(context, buyer.ID)
}

// # Directory

// DirectorySize returns the number of registered users.
func (service *Service) DirectorySize(context context.Context) (int, error) {
	return service.users.Count(context)
}
