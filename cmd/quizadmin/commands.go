package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "quizadmin/internal/errors"
	"quizadmin/internal/gateway"
	"quizadmin/internal/model"
	"quizadmin/internal/validation"
)

func newLoginCmd() *cobra.Command {
	var creds model.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := validation.New().Struct(creds); err != nil {
				return err
			}
			state, err := a.session.Login(cmd.Context(), a.gw.Auth, creds)
			if err != nil {
				return err
			}
			return a.print(state)
		}),
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			return a.print(a.session.Logout(cmd.Context()))
		}),
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			return a.print(a.session.State())
		}),
	}
}

func newListCmd() *cobra.Command {
	var (
		q     model.ListQuery
		order string
	)
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Print one page of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if order != "" {
				q.Order = model.SortOrder(order)
				if q.Order != model.SortAsc && q.Order != model.SortDesc {
					return fmt.Errorf("order must be asc or desc, got %q", order)
				}
			}
			if q.Limit == 0 {
				q.Limit = a.cfg.PageLimit
			}
			out, err := listResource(cmd.Context(), a.gw, args[0], q)
			if err != nil {
				return err
			}
			return a.print(out)
		}),
	}
	cmd.Flags().IntVar(&q.Page, "page", 1, "1-based page")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size (defaults to PAGE_LIMIT)")
	cmd.Flags().StringVar(&q.Search, "search", "", "search text")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "sort column")
	cmd.Flags().StringVar(&order, "order", "", "asc or desc")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete one record",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			out, err := deleteResource(cmd.Context(), a.gw, args[0], args[1])
			if err != nil {
				return err
			}
			return a.print(out)
		}),
	}
}

// listResource fetches one page. Users come back as the full flat list.
func listResource(ctx context.Context, gw *gateway.Gateways, name string, q model.ListQuery) (any, error) {
	switch name {
	case "nodes":
		return gw.Nodes.List(ctx, q)
	case "assessments":
		return gw.Assessments.List(ctx, q)
	case "questions":
		return gw.Questions.List(ctx, q)
	case "answers":
		return gw.Answers.List(ctx, q)
	case "attempts":
		return gw.Attempts.List(ctx, q)
	case "users":
		return gw.Users.List(ctx)
	}
	return nil, fmt.Errorf("%q: %w", name, apperrors.ErrUnknownResource)
}

func deleteResource(ctx context.Context, gw *gateway.Gateways, name, id string) (any, error) {
	switch name {
	case "nodes":
		return gw.Nodes.Remove(ctx, id)
	case "assessments":
		return gw.Assessments.Remove(ctx, id)
	case "questions":
		return gw.Questions.Remove(ctx, id)
	case "answers":
		return gw.Answers.Remove(ctx, id)
	case "attempts":
		return gw.Attempts.Remove(ctx, id)
	case "users":
		return gw.Users.Remove(ctx, id)
	}
	return nil, fmt.Errorf("%q: %w", name, apperrors.ErrUnknownResource)
}
