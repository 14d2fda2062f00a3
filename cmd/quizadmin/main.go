package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"quizadmin/internal/apiclient"
	"quizadmin/internal/config"
	"quizadmin/internal/gateway"
	"quizadmin/internal/session"
	"quizadmin/internal/storage"
)

// app is what every command runs against.
type app struct {
	cfg     *config.Config
	store   storage.Storage
	session *session.Store
	gw      *gateway.Gateways
	out     io.Writer
}

func openApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg := config.Load()
	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("session storage: %w", err)
	}
	sess := session.New(store)
	sess.Hydrate(ctx)
	client := apiclient.New(cfg.APIBaseURL, sess, apiclient.WithTimeout(cfg.APITimeout))
	return &app{cfg: cfg, store: store, session: sess, gw: gateway.New(client), out: out}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		log.Printf("close session storage: %v", err)
	}
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withApp opens the app around a command body.
func withApp(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.close()
		return run(cmd, a, args)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quizadmin",
		Short:         "Administer the quiz backend from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newListCmd(),
		newDeleteCmd(),
		newSeedCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
