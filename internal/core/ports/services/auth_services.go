package services

import (
	"context"
	"time"
)

// AuthSvcFacade defines the authentication operations exposed to handlers.
type AuthSvcFacade interface {
	// Login validates credentials and issues a signed access token.
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
}
