package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"placement-panic/internal/repository"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Schema up to date")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default question bank into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := repository.SeedQuestions(commandContext(cmd), st.Repos.Questions)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Question bank already populated, nothing to seed.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Seeded %d questions\n", n)
			return nil
		},
	}
}
