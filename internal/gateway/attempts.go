package gateway

import (
	"context"
	"net/url"

	"quizadmin/internal/apiclient"
	"quizadmin/internal/model"
)

// Attempts only lists and deletes; attempts are created by the
// assessment-taking flow, not by administrators.
type Attempts struct {
	client *apiclient.Client
}

func (a *Attempts) Path() string { return PathAttempts }

func (a *Attempts) List(ctx context.Context, q model.ListQuery) (*model.Page[model.Attempt], error) {
	var page model.Page[model.Attempt]
	if err := a.client.Get(ctx, PathAttempts, apiclient.RequestOptions{Query: apiclient.ListQueryParams(q)}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *Attempts) Remove(ctx context.Context, id string) (*model.DeleteResult, error) {
	var out model.DeleteResult
	if err := a.client.Delete(ctx, PathAttempts+"/"+url.PathEscape(id), apiclient.RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
