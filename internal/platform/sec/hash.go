// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialScheme turns a plain-text password into its stored form and
// compares a candidate against it.
type CredentialScheme interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, stored string) bool
}

// PlainScheme stores passwords verbatim and compares them byte for byte.
//
// It exists for parity with the seeded fixture accounts. Any real deployment
// must use [BcryptScheme].
type PlainScheme struct{}

// Hash returns the password unchanged.
func (PlainScheme) Hash(plainTextPassword string) (string, error) {
	return plainTextPassword, nil
}

// Verify reports exact equality.
func (PlainScheme) Verify(plainTextPassword, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(plainTextPassword), []byte(stored)) == 1
}

// BcryptScheme stores bcrypt hashes.
type BcryptScheme struct {
	Cost int
}

// Hash hashes a plain-text password using the bcrypt algorithm.
func (scheme BcryptScheme) Hash(plainTextPassword string) (string, error) {
	return HashPassword(plainTextPassword, scheme.Cost)
}

// Verify compares the password with its bcrypt hash.
func (BcryptScheme) Verify(plainTextPassword, stored string) bool {
	return CheckPasswordHash(plainTextPassword, stored)
}

// SchemeByName maps a PASSWORD_SCHEME value to its implementation.
func SchemeByName(name string) (CredentialScheme, error) {
	switch name {
	case "plain":
		return PlainScheme{}, nil
	case "bcrypt":
		return BcryptScheme{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("sec: unknown credential scheme %q", name)
}

// HashPassword hashes a plain-text password using the bcrypt algorithm.
// A zero cost selects bcrypt.DefaultCost.
func HashPassword(plainTextPassword string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), cost)
	if err != nil {
		return "", fmt.Errorf("auth: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
