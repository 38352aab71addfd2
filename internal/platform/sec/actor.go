// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/taibuivan/bookhub/internal/platform/apperr"

// # Access Gate

// Actor is the logged-in identity performing an operation.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RequireActor is the access gate. It fails with LOGIN_REQUIRED when nobody
// is logged in. There are no ownership or role checks.
func RequireActor(actor *Actor) error {
	if actor == nil || actor.ID == "" {
		return apperr.LoginRequired()
	}
	return nil
}
