// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user directory and the session store.

A session is a signed token naming a stored session record. The record holds
exactly one user identity; logging out deletes it, which revokes the token
even before it expires.

# Architecture

  - User / Profile / Session: Domain entities.
  - UserRepository: Directory storage (memory or PostgreSQL).
  - SessionRepository: Session storage (memory or Redis).
  - Service: Login, registration, logout, current user and purchases.
*/
package auth

import (
	"slices"
	"time"
)

// # Domain Entities

// User is a directory entry. Password is stored in the form produced by the
// configured credential scheme.
type User struct {
	ID             string
	Name           string
	Email          string
	Password       string
	PurchasedBooks []string
}

// Profile is the password-free projection of a [User]. It is what "current
// user" returns.
type Profile struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	PurchasedBooks []string `json:"purchasedBooks"`
}

// Profile strips the password.
func (user *User) Profile() *Profile {
	return &Profile{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		PurchasedBooks: append([]string{}, user.PurchasedBooks...),
	}
}

// HasPurchased reports whether bookID is in the purchase list.
func (user *User) HasPurchased(bookID string) bool {
	return slices.Contains(user.PurchasedBooks, bookID)
}

// Clone returns a deep copy.
func (user *User) Clone() *User {
	clone := *user
	clone.PurchasedBooks = append([]string{}, user.PurchasedBooks...)
	return &clone
}

// Session binds one session id to one user.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (session *Session) Expired(now time.Time) bool {
	return !now.Before(session.ExpiresAt)
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldBookID   = "bookId"
)
