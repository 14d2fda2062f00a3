package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttemptAnswer records the answer picked for one question of an attempt.
type AttemptAnswer struct {
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Attempt is a run of an Assessment by a User. Attempts are produced by the
// assessment-taking flow; administrators can only list and delete them.
type Attempt struct {
	ID           string          `json:"_id,omitempty"`
	UserID       string          `json:"userId"`
	AssessmentID string          `json:"assessmentId"`
	StartedAt    *time.Time      `json:"startedAt,omitempty"`
	FinishedAt   *time.Time      `json:"finishedAt"`
	TotalScore   decimal.Decimal `json:"totalScore"`
	Answers      []AttemptAnswer `json:"answers"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

func (a Attempt) GetID() string { return a.ID }

// Finished reports whether the attempt has been submitted.
func (a Attempt) Finished() bool { return a.FinishedAt != nil }
