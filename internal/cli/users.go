package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/relaypager"
	"github.com/Alp4ka/relaypager/user"
)

func newListCmd(rt func() *Runtime) *cobra.Command {
	var (
		first, last   int
		after, before string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a page of users",
		Example: `  relaypager list --first 10
  relaypager list --first 10 --after <endCursor>
  relaypager list --last 10 --before <startCursor>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := relaypager.PageRequest{
				After:  lo.EmptyableToPtr(after),
				Before: lo.EmptyableToPtr(before),
			}

			if cmd.Flags().Changed("first") {
				req.First = lo.ToPtr(first)
			}

			if cmd.Flags().Changed("last") {
				req.Last = lo.ToPtr(last)
			}

			conn, err := rt().Users.ListPage(cmd.Context(), req)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), conn)
		},
	}

	cmd.Flags().IntVar(&first, "first", 0, "page size when paging forward")
	cmd.Flags().StringVar(&after, "after", "", "cursor to start after")
	cmd.Flags().IntVar(&last, "last", 0, "page size when paging backward")
	cmd.Flags().StringVar(&before, "before", "", "cursor to end before")

	return cmd
}

func newAllCmd(rt func() *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List every user without pagination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := rt().Users.List(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), users)
		},
	}
}

func newGetCmd(rt func() *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := rt().Users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), u)
		},
	}
}

func newCreateCmd(rt func() *Runtime) *cobra.Command {
	var (
		in  user.CreateInput
		bio string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("bio") {
				in.Bio = lo.ToPtr(bio)
			}

			u, err := rt().Users.Create(cmd.Context(), in)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "user name")
	cmd.Flags().StringVar(&in.Email, "email", "", "user email")
	cmd.Flags().IntVar(&in.Age, "age", 0, "user age")
	cmd.Flags().StringVar(&bio, "bio", "", "user bio")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUpdateCmd(rt func() *Runtime) *cobra.Command {
	var (
		name, email, bio string
		age              int
		clearBio         bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update the given fields of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("bio") && clearBio {
				return fmt.Errorf("--bio and --clear-bio are mutually exclusive")
			}

			var in user.UpdateInput
			if flags.Changed("name") {
				in.Name = lo.ToPtr(name)
			}

			if flags.Changed("email") {
				in.Email = lo.ToPtr(email)
			}

			if flags.Changed("age") {
				in.Age = lo.ToPtr(age)
			}

			switch {
			case flags.Changed("bio"):
				in.Bio = user.Set(bio)
			case clearBio:
				in.Bio = user.Clear[string]()
			}

			u, err := rt().Users.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().IntVar(&age, "age", 0, "new age")
	cmd.Flags().StringVar(&bio, "bio", "", "new bio")
	cmd.Flags().BoolVar(&clearBio, "clear-bio", false, "remove the bio")

	return cmd
}

func newDeleteCmd(rt func() *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt().Users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]bool{"deleted": true})
		},
	}
}
