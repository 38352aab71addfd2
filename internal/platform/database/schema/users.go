// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns used by the PostgreSQL
// repositories, so queries never spell identifiers inline.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Password:  "password",
	CreatedAt: "createdat",
}

// UserPurchaseTable represents the 'users.purchase' table
type UserPurchaseTable struct {
	Table    string
	UserID   string
	BookID   string
	Position string
}

// UserPurchase is the schema definition for users.purchase
var UserPurchase = UserPurchaseTable{
	Table:    "users.purchase",
	UserID:   "userid",
	BookID:   "bookid",
	Position: "position",
}
