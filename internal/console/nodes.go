package console

import (
	"context"
	"fmt"

	apperrors "quizadmin/internal/errors"
	"quizadmin/internal/gateway"
	"quizadmin/internal/listpage"
	"quizadmin/internal/model"
)

// maxNodeDepth bounds the ancestor walk.
const maxNodeDepth = 64

func newNodesScreen(gw *gateway.Gateways, limit int) Screen {
	s := newResourceScreen("nodes", gw.Nodes, limit,
		[]string{"name", "type", "createdAt"}, "createdAt", model.SortDesc,
		func(n model.Node) model.NodeInput {
			in := model.NodeInput{Name: n.Name, Type: n.Type}
			if n.ParentID != nil {
				parent := *n.ParentID
				in.ParentID = &parent
			}
			return in
		})

	s.editor.form = listpage.NewForm(listpage.FormConfig[model.NodeInput]{
		Normalize: func(draft model.NodeInput) model.NodeInput {
			if draft.ParentID != nil && *draft.ParentID == "" {
				draft.ParentID = nil
			}
			return draft
		},
		Save: func(ctx context.Context, id string, draft model.NodeInput) error {
			if id == "" {
				_, err := gw.Nodes.Create(ctx, draft)
				return err
			}
			if err := CheckParent(ctx, gw.Nodes.Get, id, draft.ParentID); err != nil {
				return err
			}
			_, err := gw.Nodes.Update(ctx, id, draft)
			return err
		},
		Saved: s.page.Refetch,
	})
	return s
}

// CheckParent rejects a parentID that is id itself or one of its
// descendants. It walks up from parentID through get.
func CheckParent(ctx context.Context, get func(ctx context.Context, id string) (*model.Node, error), id string, parentID *string) error {
	if parentID == nil || *parentID == "" {
		return nil
	}
	seen := map[string]bool{}
	current := *parentID
	for depth := 0; depth < maxNodeDepth; depth++ {
		if current == id {
			return apperrors.ErrNodeCycle
		}
		if seen[current] {
			return fmt.Errorf("%w: ancestors of %s already loop", apperrors.ErrNodeCycle, *parentID)
		}
		seen[current] = true

		node, err := get(ctx, current)
		if err != nil {
			return fmt.Errorf("load ancestor %s: %w", current, err)
		}
		if node.ParentID == nil || *node.ParentID == "" {
			return nil
		}
		current = *node.ParentID
	}
	return fmt.Errorf("%w: deeper than %d levels", apperrors.ErrNodeCycle, maxNodeDepth)
}
