package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizadmin/internal/apiclient"
	"quizadmin/internal/apitest"
	"quizadmin/internal/gateway"
	"quizadmin/internal/model"
)

const seedJSON = `{
  "nodes": [{
    "name": "Math", "type": "category",
    "children": [{
      "name": "Algebra", "type": "topic",
      "assessments": [{
        "title": "Linear equations", "type": "quiz",
        "questions": [{
          "text": "2x = 4, x = ?",
          "answers": [{"text": "2", "isCorrect": true}, {"text": "4"}]
        }]
      }]
    }]
  }]
}`

func newTestGateways(t *testing.T) (*apitest.Backend, *gateway.Gateways) {
	t.Helper()
	backend := apitest.New()
	t.Cleanup(backend.Close)
	token := backend.Token("admin")
	client := apiclient.New(backend.URL(), apiclient.TokenFunc(func() string { return token }))
	return backend, gateway.New(client)
}

func TestSeedCreatesTree(t *testing.T) {
	backend, gw := newTestGateways(t)

	var file SeedFile
	require.NoError(t, json.Unmarshal([]byte(seedJSON), &file))

	res, err := newSeeder(gw).run(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Nodes: 2, Assessments: 1, Questions: 1, Answers: 2}, res)
	assert.Equal(t, 2, backend.Count("nodes"))
	assert.Equal(t, 2, backend.Count("answers"))

	page, err := gw.Nodes.List(context.Background(), model.ListQuery{Search: "algebra"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].ParentID)

	roots, err := gw.Nodes.List(context.Background(), model.ListQuery{Search: "math"})
	require.NoError(t, err)
	assert.Equal(t, roots.Items[0].ID, *page.Items[0].ParentID)
}

func TestSeedStopsOnInvalidEntry(t *testing.T) {
	backend, gw := newTestGateways(t)
	file := SeedFile{Nodes: []SeedNode{
		{Name: "Math", Type: model.NodeTypeCategory},
		{Name: "Bad", Type: "planet"},
		{Name: "Never", Type: model.NodeTypeCategory},
	}}

	res, err := newSeeder(gw).run(context.Background(), file)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, 1, res.Nodes)
	assert.Equal(t, 1, backend.Count("nodes"))
}

func TestSeedReportsBackendFailure(t *testing.T) {
	backend, gw := newTestGateways(t)
	backend.FailNext(http.MethodPost, "/assessments", apitest.Failure{Status: http.StatusInternalServerError, Message: "db down"})

	var file SeedFile
	require.NoError(t, json.Unmarshal([]byte(seedJSON), &file))

	res, err := newSeeder(gw).run(context.Background(), file)
	require.EqualError(t, err, `create assessment "Linear equations": db down`)
	assert.Equal(t, SeedResult{Nodes: 2}, res)
}

func TestListAndDeleteUnknownResource(t *testing.T) {
	_, gw := newTestGateways(t)

	_, err := listResource(context.Background(), gw, "grades", model.ListQuery{})
	assert.ErrorContains(t, err, "unknown resource")
	_, err = deleteResource(context.Background(), gw, "grades", "1")
	assert.ErrorContains(t, err, "unknown resource")
}

func TestListResource(t *testing.T) {
	backend, gw := newTestGateways(t)
	backend.Seed("questions", apitest.Doc{"text": "Why?", "assessmentId": "a1"})

	out, err := listResource(context.Background(), gw, "questions", model.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	page, ok := out.(*model.Page[model.Question])
	require.True(t, ok)
	assert.Equal(t, 1, page.Total)
}
