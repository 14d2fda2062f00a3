package gateway

import (
	"context"
	"net/url"

	"quizadmin/internal/apiclient"
	"quizadmin/internal/model"
)

// Users deviates from Resource: the list endpoint is not paginated and
// creation goes through registration.
type Users struct {
	client *apiclient.Client
}

// List returns every user. The backend ignores paging for /users.
func (u *Users) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := u.client.Get(ctx, PathUsers, apiclient.RequestOptions{}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches one user.
func (u *Users) Get(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := u.client.Get(ctx, PathUsers+"/"+url.PathEscape(id), apiclient.RequestOptions{}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a user.
func (u *Users) Register(ctx context.Context, in model.UserInput) (*model.RegisterResult, error) {
	var out model.RegisterResult
	if err := u.client.Post(ctx, PathUsers+"/register", in, apiclient.RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes a user. A blank password is not sent.
func (u *Users) Update(ctx context.Context, id string, in model.UserInput) (*model.User, error) {
	var user model.User
	if err := u.client.Put(ctx, PathUsers+"/"+url.PathEscape(id), in, apiclient.RequestOptions{}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Remove deletes a user.
func (u *Users) Remove(ctx context.Context, id string) (*model.MessageResult, error) {
	var out model.MessageResult
	if err := u.client.Delete(ctx, PathUsers+"/"+url.PathEscape(id), apiclient.RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
