package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// NewLeaderboardCmd prints the grouped leaderboard, optionally as a logged-in
// user so the mine/friends groups are populated.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the grouped leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, log, err := buildDataSource(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx := cmd.Context()
			if email != "" {
				if _, err := ds.Login(ctx, email, password); err != nil {
					return err
				}
			} else if err := ds.Logout(ctx); err != nil {
				return err
			}

			lb, err := ds.GetLeaderboard(ctx)
			if err != nil {
				return err
			}
			printGroup(cmd, "mine", lb.Mine)
			printGroup(cmd, "friends", lb.Friends)
			printGroup(cmd, "others", lb.Others)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email (omit for anonymous view)")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	return cmd
}

func printGroup(cmd *cobra.Command, name string, standings []domain.QuizStanding) {
	cmd.Printf("%s:\n", name)
	for _, st := range standings {
		cmd.Printf("  %s (quiz %d)\n", st.Title, st.QuizID)
		if len(st.Results) == 0 {
			cmd.Println("    no results yet")
			continue
		}
		for rank, row := range st.Results {
			display := row.Username
			if display == "" {
				display = fmt.Sprintf("user %d", row.UserID)
			}
			cmd.Printf("    %d. %s  %d%% (%d/%d)\n", rank+1, display, row.Percentage, row.Score, row.TotalQuestions)
		}
	}
}
