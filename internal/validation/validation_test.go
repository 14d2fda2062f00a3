package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"quizadmin/internal/model"
)

func TestObjectIDTag(t *testing.T) {
	v := New()
	good := "507f1f77bcf86cd799439011"
	bad := "not-an-id"

	assert.NoError(t, v.Struct(model.NodeInput{Name: "Math", Type: model.NodeTypeCategory}))
	assert.NoError(t, v.Struct(model.NodeInput{Name: "Math", Type: model.NodeTypeTopic, ParentID: &good}))
	assert.Error(t, v.Struct(model.NodeInput{Name: "Math", Type: model.NodeTypeTopic, ParentID: &bad}))
	assert.Error(t, v.Struct(model.AssessmentInput{Title: "Quiz", Type: model.AssessmentTypeQuiz, NodeID: bad}))
}

func TestBlankRequired(t *testing.T) {
	v := New()

	err := v.Struct(model.UserInput{Email: "not-mail", Role: model.RoleAdmin})
	assert.Equal(t, []string{"Name"}, BlankRequired(err))

	err = v.Struct(model.UserInput{Name: "Ada", Email: "not-mail", Role: model.RoleAdmin})
	assert.Error(t, err)
	assert.Empty(t, BlankRequired(err))

	assert.Nil(t, BlankRequired(errors.New("other")))
}
