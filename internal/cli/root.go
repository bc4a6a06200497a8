// Package cli implements the relaypager command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/relaypager"
	"github.com/Alp4ka/relaypager/internal/config"
	"github.com/Alp4ka/relaypager/internal/database"
	"github.com/Alp4ka/relaypager/internal/logging"
	"github.com/Alp4ka/relaypager/user"
)

// Users is the user directory the commands operate on.
type Users interface {
	ListPage(ctx context.Context, req relaypager.PageRequest) (*relaypager.Connection[user.User], error)
	List(ctx context.Context) ([]user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
	Create(ctx context.Context, in user.CreateInput) (*user.User, error)
	Update(ctx context.Context, id string, in user.UpdateInput) (*user.User, error)
	Delete(ctx context.Context, id string) error
}

// Runtime holds what the commands need at run time.
type Runtime struct {
	Users   Users
	Migrate func(ctx context.Context) error
	Logger  logrus.FieldLogger
	Close   func() error
}

// RuntimeFactory builds the runtime from a config file path.
type RuntimeFactory func(configPath string) (*Runtime, error)

// NewRootCmd creates the root command backed by the configured database.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithRuntime(ver, NewRuntime)
}

// NewRootCmdWithRuntime creates the root command with an explicit runtime
// factory for testability.
func NewRootCmdWithRuntime(ver string, factory RuntimeFactory) *cobra.Command {
	var (
		configPath string
		rt         *Runtime
	)

	cmd := &cobra.Command{
		Use:           "relaypager",
		Short:         "Cursor-paginated user directory",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			rt, err = factory(configPath)
			return err
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if rt == nil || rt.Close == nil {
				return nil
			}

			return rt.Close()
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file")

	runtime := func() *Runtime { return rt }
	cmd.AddCommand(
		newMigrateCmd(runtime),
		newSeedCmd(runtime),
		newListCmd(runtime),
		newAllCmd(runtime),
		newGetCmd(runtime),
		newCreateCmd(runtime),
		newUpdateCmd(runtime),
		newDeleteCmd(runtime),
	)

	return cmd
}

// NewRuntime loads the configuration and connects to the database.
func NewRuntime(configPath string) (*Runtime, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	repo := user.NewRepository(db)
	pager := relaypager.NewPaginator(repo.Store(), user.PageKey).
		WithMaxLimit(cfg.Paging.MaxLimit).
		WithOrder(cfg.Paging.Order).
		WithLogger(logger)

	return &Runtime{
		Users:   user.NewService(repo, pager, logger),
		Migrate: repo.Migrate,
		Logger:  logger,
		Close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}

			return sqlDB.Close()
		},
	}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	return nil
}
