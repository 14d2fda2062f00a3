package console

import (
	"context"

	"github.com/shopspring/decimal"

	"quizadmin/internal/gateway"
	"quizadmin/internal/listpage"
	"quizadmin/internal/model"
)

// ScoreSummary aggregates the attempts on the current page.
type ScoreSummary struct {
	Count    int             `json:"count"`
	Finished int             `json:"finished"`
	Average  decimal.Decimal `json:"average"`
	Best     decimal.Decimal `json:"best"`
}

// AttemptsView is the attempts list plus its summary.
type AttemptsView struct {
	listpage.View[model.Attempt]
	Summary ScoreSummary `json:"summary"`
}

// Summarize scores finished attempts only; open ones have no final score.
func Summarize(attempts []model.Attempt) ScoreSummary {
	s := ScoreSummary{Count: len(attempts)}
	sum := decimal.Zero
	for _, a := range attempts {
		if !a.Finished() {
			continue
		}
		s.Finished++
		sum = sum.Add(a.TotalScore)
		if s.Finished == 1 || a.TotalScore.GreaterThan(s.Best) {
			s.Best = a.TotalScore
		}
	}
	if s.Finished > 0 {
		s.Average = sum.DivRound(decimal.NewFromInt(int64(s.Finished)), 2)
	}
	return s
}

func newAttemptsScreen(gw *gateway.Gateways, limit int) Screen {
	page := listpage.New(listpage.Config[model.Attempt]{
		Path:         gw.Attempts.Path(),
		Limit:        limit,
		SortKeys:     []string{"totalScore", "startedAt", "createdAt"},
		DefaultSort:  "createdAt",
		DefaultOrder: model.SortDesc,
		List:         gw.Attempts.List,
		Remove: func(ctx context.Context, id string) error {
			_, err := gw.Attempts.Remove(ctx, id)
			return err
		},
		Deferred: true,
	})
	return &pagedScreen[model.Attempt, struct{}]{
		name: "attempts",
		page: page,
		decorate: func(v listpage.View[model.Attempt]) any {
			return AttemptsView{View: v, Summary: Summarize(v.Items)}
		},
	}
}
