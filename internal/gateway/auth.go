package gateway

import (
	"context"

	"quizadmin/internal/apiclient"
	"quizadmin/internal/model"
)

// Auth exchanges credentials for a bearer token.
type Auth struct {
	client *apiclient.Client
}

// Login posts credentials without an Authorization header.
func (a *Auth) Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error) {
	var out model.LoginResponse
	if err := a.client.Post(ctx, PathLogin, creds, apiclient.RequestOptions{SkipAuth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
