package model

import "time"

// Question belongs to an Assessment.
type Question struct {
	ID           string     `json:"_id,omitempty"`
	Text         string     `json:"text"`
	AssessmentID string     `json:"assessmentId"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func (q Question) GetID() string { return q.ID }

// QuestionInput is the create/update payload for questions.
type QuestionInput struct {
	Text         string `json:"text" validate:"required"`
	AssessmentID string `json:"assessmentId" validate:"required,objectid"`
}

// Answer is one selectable answer of a Question.
type Answer struct {
	ID         string     `json:"_id,omitempty"`
	QuestionID string     `json:"questionId"`
	Text       string     `json:"text"`
	IsCorrect  bool       `json:"isCorrect"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

func (a Answer) GetID() string { return a.ID }

// AnswerInput is the create/update payload for answers.
type AnswerInput struct {
	Text       string `json:"text" validate:"required"`
	QuestionID string `json:"questionId" validate:"required,objectid"`
	IsCorrect  bool   `json:"isCorrect"`
}
