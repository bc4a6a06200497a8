package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/relaypager/user"
)

func newMigrateCmd(rt func() *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt().Migrate(cmd.Context()); err != nil {
				return err
			}

			rt().Logger.Info("migration complete")

			return nil
		},
	}
}

func newSeedCmd(rt func() *Runtime) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}

			for i := 1; i <= count; i++ {
				_, err := rt().Users.Create(cmd.Context(), user.CreateInput{
					Name:  fmt.Sprintf("User %d", i),
					Email: fmt.Sprintf("user%d@example.com", i),
					Age:   20 + i%50,
				})
				if err != nil {
					return fmt.Errorf("seed user %d: %w", i, err)
				}
			}

			rt().Logger.WithField("count", count).Info("users seeded")

			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "number of users to insert")

	return cmd
}
