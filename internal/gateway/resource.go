// Package gateway maps the backend's CRUD endpoints onto typed Go calls.
package gateway

import (
	"context"
	"net/url"

	"quizadmin/internal/apiclient"
	"quizadmin/internal/model"
)

// Base paths of the backend resources.
const (
	PathUsers       = "/users"
	PathNodes       = "/nodes"
	PathAssessments = "/assessments"
	PathQuestions   = "/questions"
	PathAnswers     = "/answers"
	PathAttempts    = "/attempts"
	PathLogin       = "/auth/login"
)

// Resource is the standard paginated CRUD gateway over one base path.
// T is the entity read back, In the create/update payload.
type Resource[T, In any] struct {
	client *apiclient.Client
	path   string
}

// NewResource builds a gateway over path.
func NewResource[T, In any](client *apiclient.Client, path string) *Resource[T, In] {
	return &Resource[T, In]{client: client, path: path}
}

// Path returns the base path.
func (r *Resource[T, In]) Path() string { return r.path }

// List fetches one page.
func (r *Resource[T, In]) List(ctx context.Context, q model.ListQuery) (*model.Page[T], error) {
	var page model.Page[T]
	if err := r.client.Get(ctx, r.path, apiclient.RequestOptions{Query: apiclient.ListQueryParams(q)}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches one record.
func (r *Resource[T, In]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.client.Get(ctx, r.item(id), apiclient.RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new record.
func (r *Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var out T
	if err := r.client.Post(ctx, r.path, in, apiclient.RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the fields present in in.
func (r *Resource[T, In]) Update(ctx context.Context, id string, in In) (*T, error) {
	var out T
	if err := r.client.Put(ctx, r.item(id), in, apiclient.RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Remove deletes one record.
func (r *Resource[T, In]) Remove(ctx context.Context, id string) (*model.DeleteResult, error) {
	var out model.DeleteResult
	if err := r.client.Delete(ctx, r.item(id), apiclient.RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, In]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// Gateways groups every gateway the admin client talks to.
type Gateways struct {
	Auth        *Auth
	Users       *Users
	Nodes       *Resource[model.Node, model.NodeInput]
	Assessments *Resource[model.Assessment, model.AssessmentInput]
	Questions   *Resource[model.Question, model.QuestionInput]
	Answers     *Resource[model.Answer, model.AnswerInput]
	Attempts    *Attempts
}

// New wires all gateways onto one client.
func New(client *apiclient.Client) *Gateways {
	return &Gateways{
		Auth:        &Auth{client: client},
		Users:       &Users{client: client},
		Nodes:       NewResource[model.Node, model.NodeInput](client, PathNodes),
		Assessments: NewResource[model.Assessment, model.AssessmentInput](client, PathAssessments),
		Questions:   NewResource[model.Question, model.QuestionInput](client, PathQuestions),
		Answers:     NewResource[model.Answer, model.AnswerInput](client, PathAnswers),
		Attempts:    &Attempts{client: client},
	}
}
