package model

import "time"

// AssessmentType is the kind of gradable run.
type AssessmentType string

const (
	AssessmentTypeQuiz AssessmentType = "quiz"
	AssessmentTypeExam AssessmentType = "exam"
	AssessmentTypeTest AssessmentType = "test"
)

// Assessment is a quiz, exam or test bound to one Node.
type Assessment struct {
	ID        string         `json:"_id,omitempty"`
	Title     string         `json:"title"`
	Type      AssessmentType `json:"type"`
	NodeID    string         `json:"nodeId"`
	CreatedBy string         `json:"createdBy,omitempty"`
	UpdatedBy string         `json:"updatedBy,omitempty"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

func (a Assessment) GetID() string { return a.ID }

// AssessmentInput is the create/update payload for assessments.
type AssessmentInput struct {
	Title  string         `json:"title" validate:"required"`
	Type   AssessmentType `json:"type" validate:"required,oneof=quiz exam test"`
	NodeID string         `json:"nodeId" validate:"required,objectid"`
}
