package app

import (
	"context"
	"sort"

	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// SubmitQuizResult appends one completed play for the current user. Results
// are append-only; there is no update or delete, and a result may outlive
// its quiz (it silently drops out of aggregation once the quiz is gone).
func (s *LocalDataSource) SubmitQuizResult(ctx context.Context, quizID int64, score, totalQuestions, percentage int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	results, err := s.loadResults(ctx)
	if err != nil {
		return err
	}
	id, err := s.nextID(ctx, kindResult)
	if err != nil {
		return err
	}
	result := domain.QuizResult{
		ID:             id,
		UserID:         user.ID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: totalQuestions,
		Percentage:     percentage,
		CompletedAt:    s.now(),
	}
	if err := s.saveResults(ctx, append(results, result)); err != nil {
		return err
	}
	s.log.Debug("result submitted", "resultId", id, "quizId", quizID, "percentage", percentage)
	return nil
}

// ResultsForQuiz returns the full ranked result rows for one quiz.
func (s *LocalDataSource) ResultsForQuiz(ctx context.Context, quizID int64) ([]domain.ResultRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.loadQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	if quizIndex(quizzes, quizID) < 0 {
		return nil, domain.ErrNotFound
	}
	results, err := s.loadResults(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	return rankResults(results, users, quizID), nil
}

// GetLeaderboard attaches the top ranked results to every quiz visible to
// the current viewer, grouped the same way as GetAllQuizzes.
func (s *LocalDataSource) GetLeaderboard(ctx context.Context) (domain.Leaderboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups, err := s.groupedQuizzes(ctx)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	results, err := s.loadResults(ctx)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	return domain.Leaderboard{
		Mine:    s.standings(groups.Mine, results, users),
		Friends: s.standings(groups.Friends, results, users),
		Others:  s.standings(groups.Others, results, users),
	}, nil
}

// GetMyLeaderboard is the same join restricted to the viewer's own quizzes.
func (s *LocalDataSource) GetMyLeaderboard(ctx context.Context) ([]domain.QuizStanding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.loadQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]domain.Quiz, 0)
	for _, q := range quizzes {
		if q.OwnerID == user.ID {
			mine = append(mine, q)
		}
	}
	results, err := s.loadResults(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	return s.standings(mine, results, users), nil
}

// standings builds a QuizStanding per quiz with results truncated to the
// configured top N. A quiz with zero results still appears, with an empty
// results list.
func (s *LocalDataSource) standings(quizzes []domain.Quiz, results []domain.QuizResult, users []domain.User) []domain.QuizStanding {
	standings := make([]domain.QuizStanding, 0, len(quizzes))
	for _, q := range quizzes {
		rows := rankResults(results, users, q.ID)
		if len(rows) > s.topN {
			rows = rows[:s.topN]
		}
		standings = append(standings, domain.QuizStanding{
			QuizID:   q.ID,
			Title:    q.Title,
			OwnerID:  q.OwnerID,
			IsPublic: q.IsPublic,
			Results:  rows,
		})
	}
	return standings
}

// rankResults joins the results of one quiz with the user collection and
// sorts by percentage descending, ties broken by completion time descending
// (most recent first). The ordering is a contract: it decides medal slots in
// every consuming view. A row whose user no longer resolves keeps its place
// with an empty username.
func rankResults(results []domain.QuizResult, users []domain.User, quizID int64) []domain.ResultRow {
	rows := make([]domain.ResultRow, 0)
	for _, r := range results {
		if r.QuizID != quizID {
			continue
		}
		username := ""
		if u := findUserByID(users, r.UserID); u != nil {
			username = u.Username
		}
		rows = append(rows, domain.ResultRow{
			ResultID:       r.ID,
			UserID:         r.UserID,
			Username:       username,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     r.Percentage,
			CompletedAt:    r.CompletedAt,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Percentage != rows[j].Percentage {
			return rows[i].Percentage > rows[j].Percentage
		}
		return rows[i].CompletedAt.After(rows[j].CompletedAt)
	})
	return rows
}
