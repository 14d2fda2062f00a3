package console

import (
	"context"
	"fmt"

	apperrors "quizadmin/internal/errors"
	"quizadmin/internal/gateway"
	"quizadmin/internal/listpage"
	"quizadmin/internal/model"
	"quizadmin/internal/validation"
)

// UserRow is a listed user with the search matches marked.
type UserRow struct {
	model.User
	NameMarks  []listpage.Segment `json:"nameMarks"`
	EmailMarks []listpage.Segment `json:"emailMarks"`
}

// UsersView is the users page with highlighted rows.
type UsersView struct {
	listpage.View[model.User]
	Rows []UserRow `json:"rows"`
}

func userField(u model.User, key string) string {
	switch key {
	case "_id":
		return u.ID
	case "name":
		return u.Name
	case "email":
		return u.Email
	case "role":
		return string(u.Role)
	default:
		return ""
	}
}

type usersScreen struct {
	list   *listpage.Local[model.User]
	editor *editor[model.User, model.UserInput]
}

func newUsersScreen(gw *gateway.Gateways, pageSize int) Screen {
	list := listpage.NewLocal(listpage.LocalConfig[model.User]{
		Path:         gateway.PathUsers,
		PageSize:     pageSize,
		SortKeys:     []string{"_id", "name", "email", "role"},
		DefaultSort:  "_id",
		DefaultOrder: model.SortAsc,
		SearchFields: []string{"name", "email"},
		Field:        userField,
		List:         gw.Users.List,
		Remove: func(ctx context.Context, id string) error {
			_, err := gw.Users.Remove(ctx, id)
			return err
		},
	})

	v := validation.New()
	form := listpage.NewForm(listpage.FormConfig[model.UserInput]{
		Check: func(id string, draft model.UserInput) error {
			if id == "" && draft.Password == "" {
				return fmt.Errorf("%w: Password left blank", apperrors.ErrFormAborted)
			}
			return listpage.StructCheck(v, draft)
		},
		Save: func(ctx context.Context, id string, draft model.UserInput) error {
			var err error
			if id == "" {
				_, err = gw.Users.Register(ctx, draft)
			} else {
				_, err = gw.Users.Update(ctx, id, draft)
			}
			return err
		},
		Saved: list.Refetch,
	})

	return &usersScreen{
		list: list,
		editor: &editor[model.User, model.UserInput]{
			form: form,
			list: list,
			get:  gw.Users.Get,
			toDraft: func(u model.User) model.UserInput {
				return model.UserInput{Name: u.Name, Email: u.Email, Role: u.Role}
			},
		},
	}
}

func (s *usersScreen) Name() string { return "users" }

func (s *usersScreen) Show(ctx context.Context, p Params) (any, error) {
	if p.Search != nil {
		s.list.SetSearch(*p.Search)
	}
	if p.Sort != "" {
		if err := s.list.ToggleSort(p.Sort); err != nil {
			return nil, err
		}
	}
	if p.Page != 0 {
		if err := s.list.SetPage(p.Page); err != nil {
			return nil, err
		}
	}
	err := s.list.Activate(ctx)
	return s.view(), err
}

func (s *usersScreen) Delete(ctx context.Context, id string) (any, error) {
	err := s.list.Delete(ctx, id)
	return s.view(), err
}

func (s *usersScreen) Editor() Editor { return s.editor }

func (s *usersScreen) view() UsersView {
	v := s.list.View()
	rows := make([]UserRow, len(v.Items))
	for i, u := range v.Items {
		rows[i] = UserRow{
			User:       u,
			NameMarks:  listpage.Highlight(u.Name, v.Search),
			EmailMarks: listpage.Highlight(u.Email, v.Search),
		}
	}
	return UsersView{View: v, Rows: rows}
}
