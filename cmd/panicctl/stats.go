package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"placement-panic/internal/repository"
	"placement-panic/internal/services"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print aggregated practice statistics for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("user")
			userID, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid --user %q: %w", raw, err)
			}

			st, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			interviews, err := st.Repos.Interviews.ListByUser(commandContext(cmd), userID)
			if err != nil {
				return fmt.Errorf("list interviews: %w", err)
			}
			return printJSON(cmd, services.ComputeStats(interviews))
		},
	}
	cmd.Flags().String("user", "", "User ID")
	cmd.MarkFlagRequired("user")
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the feedback report for a single interview",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("interview")
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid --interview %q: %w", raw, err)
			}

			st, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			iv, err := st.Repos.Interviews.GetByID(commandContext(cmd), id)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("interview %s not found", id)
			}
			if err != nil {
				return fmt.Errorf("get interview: %w", err)
			}
			return printJSON(cmd, services.ComputeFeedback(iv))
		},
	}
	cmd.Flags().String("interview", "", "Interview ID")
	cmd.MarkFlagRequired("interview")
	return cmd
}
