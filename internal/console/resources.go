package console

import (
	"context"

	"quizadmin/internal/gateway"
	"quizadmin/internal/listpage"
	"quizadmin/internal/model"
)

// newResourceScreen wires a standard CRUD gateway to a list and a form.
func newResourceScreen[E listpage.Entity, D any](
	name string,
	res *gateway.Resource[E, D],
	limit int,
	sortKeys []string,
	defaultSort string,
	defaultOrder model.SortOrder,
	toDraft func(E) D,
) *pagedScreen[E, D] {
	page := listpage.New(listpage.Config[E]{
		Path:         res.Path(),
		Limit:        limit,
		SortKeys:     sortKeys,
		DefaultSort:  defaultSort,
		DefaultOrder: defaultOrder,
		List:         res.List,
		Remove: func(ctx context.Context, id string) error {
			_, err := res.Remove(ctx, id)
			return err
		},
		Deferred: true,
	})
	form := listpage.NewForm(listpage.FormConfig[D]{
		Save: func(ctx context.Context, id string, draft D) error {
			var err error
			if id == "" {
				_, err = res.Create(ctx, draft)
			} else {
				_, err = res.Update(ctx, id, draft)
			}
			return err
		},
		Saved: page.Refetch,
	})
	return &pagedScreen[E, D]{
		name:   name,
		page:   page,
		editor: &editor[E, D]{form: form, list: page, get: res.Get, toDraft: toDraft},
	}
}

func newAssessmentsScreen(gw *gateway.Gateways, limit int) Screen {
	return newResourceScreen("assessments", gw.Assessments, limit,
		[]string{"title", "type", "createdAt"}, "createdAt", model.SortDesc,
		func(a model.Assessment) model.AssessmentInput {
			return model.AssessmentInput{Title: a.Title, Type: a.Type, NodeID: a.NodeID}
		})
}

func newQuestionsScreen(gw *gateway.Gateways, limit int) Screen {
	return newResourceScreen("questions", gw.Questions, limit,
		[]string{"text", "createdAt"}, "createdAt", model.SortDesc,
		func(q model.Question) model.QuestionInput {
			return model.QuestionInput{Text: q.Text, AssessmentID: q.AssessmentID}
		})
}

func newAnswersScreen(gw *gateway.Gateways, limit int) Screen {
	return newResourceScreen("answers", gw.Answers, limit,
		[]string{"text", "createdAt"}, "createdAt", model.SortDesc,
		func(a model.Answer) model.AnswerInput {
			return model.AnswerInput{Text: a.Text, QuestionID: a.QuestionID, IsCorrect: a.IsCorrect}
		})
}
