package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thallberg/fullstack-quiz-sub000/internal/app"
	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// NewSeedCmd populates the store with demo accounts, quizzes, a friendship,
// and a handful of results. Useful for trying the leaderboard command against
// a redis-backed store.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the store with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, log, err := buildDataSource(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()
			return seed(cmd.Context(), ds)
		},
	}
}

// seed walks two demo accounts through the full surface: register, create
// quizzes, befriend, play. Each actor switch goes through login so the
// single-session model is exercised the way a client would.
func seed(ctx context.Context, ds app.DataSource) error {
	alice, err := ds.Register(ctx, "alice", "alice@example.com", "correct-horse")
	if err != nil {
		return err
	}
	capitals, err := ds.CreateQuiz(ctx, "Capitals", "True or false, capital cities", false, []domain.QuestionDraft{
		{Text: "Canberra is the capital of Australia", CorrectAnswer: true},
		{Text: "Sydney is the capital of Australia", CorrectAnswer: false},
		{Text: "Ottawa is the capital of Canada", CorrectAnswer: true},
	})
	if err != nil {
		return err
	}
	rivers, err := ds.CreateQuiz(ctx, "Rivers", "World rivers", true, []domain.QuestionDraft{
		{Text: "The Nile flows north", CorrectAnswer: true},
		{Text: "The Amazon is in Africa", CorrectAnswer: false},
	})
	if err != nil {
		return err
	}

	bob, err := ds.Register(ctx, "bob", "bob@example.com", "battery-staple")
	if err != nil {
		return err
	}
	if _, err := ds.SendFriendInvite(ctx, alice.Email); err != nil {
		return err
	}
	if err := ds.SubmitQuizResult(ctx, rivers.ID, 1, 2, 50); err != nil {
		return err
	}

	if _, err := ds.Login(ctx, alice.Email, "correct-horse"); err != nil {
		return err
	}
	invites, err := ds.GetPendingInvites(ctx)
	if err != nil {
		return err
	}
	for _, invite := range invites {
		if invite.RequesterID == bob.UserID {
			if _, err := ds.AcceptFriendInvite(ctx, invite.ID); err != nil {
				return err
			}
		}
	}
	if err := ds.SubmitQuizResult(ctx, capitals.ID, 3, 3, 100); err != nil {
		return err
	}
	return nil
}
