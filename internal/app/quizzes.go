package app

import (
	"context"

	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// CreateQuiz stores a new quiz owned by the current user. Every question
// gets a fresh id from the global question counter.
func (s *LocalDataSource) CreateQuiz(ctx context.Context, title, description string, isPublic bool, questions []domain.QuestionDraft) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	quizzes, err := s.loadQuizzes(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}

	id, err := s.nextID(ctx, kindQuiz)
	if err != nil {
		return domain.Quiz{}, err
	}
	qs, err := s.materializeQuestions(ctx, questions)
	if err != nil {
		return domain.Quiz{}, err
	}

	quiz := domain.Quiz{
		ID:          id,
		Title:       title,
		Description: description,
		IsPublic:    isPublic,
		OwnerID:     user.ID,
		CreatedAt:   s.now(),
		Questions:   qs,
	}
	if err := s.saveQuizzes(ctx, append(quizzes, quiz)); err != nil {
		return domain.Quiz{}, err
	}
	s.log.Debug("quiz created", "quizId", id, "ownerId", user.ID, "questions", len(qs))
	return quiz, nil
}

// UpdateQuiz replaces title, description, visibility, and questions
// wholesale. All question ids are regenerated on purpose: an edit discards
// prior question identity, so references held elsewhere (an in-progress
// play, old results) go stale.
func (s *LocalDataSource) UpdateQuiz(ctx context.Context, id int64, title, description string, isPublic bool, questions []domain.QuestionDraft) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	quizzes, err := s.loadQuizzes(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	idx := quizIndex(quizzes, id)
	if idx < 0 {
		return domain.Quiz{}, domain.ErrNotFound
	}
	if quizzes[idx].OwnerID != user.ID {
		return domain.Quiz{}, domain.ErrUnauthorized
	}

	qs, err := s.materializeQuestions(ctx, questions)
	if err != nil {
		return domain.Quiz{}, err
	}
	quizzes[idx].Title = title
	quizzes[idx].Description = description
	quizzes[idx].IsPublic = isPublic
	quizzes[idx].Questions = qs
	if err := s.saveQuizzes(ctx, quizzes); err != nil {
		return domain.Quiz{}, err
	}
	return quizzes[idx], nil
}

// DeleteQuiz removes the quiz. Its results are left in place; they drop out
// of aggregation once the quiz lookup fails.
func (s *LocalDataSource) DeleteQuiz(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	quizzes, err := s.loadQuizzes(ctx)
	if err != nil {
		return err
	}
	idx := quizIndex(quizzes, id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	if quizzes[idx].OwnerID != user.ID {
		return domain.ErrUnauthorized
	}
	return s.saveQuizzes(ctx, append(quizzes[:idx], quizzes[idx+1:]...))
}

// GetQuizByID returns the full quiz, answer key included.
func (s *LocalDataSource) GetQuizByID(ctx context.Context, id int64) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.loadQuizzes(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	idx := quizIndex(quizzes, id)
	if idx < 0 {
		return domain.Quiz{}, domain.ErrNotFound
	}
	return quizzes[idx], nil
}

// GetMyQuizzes returns all quizzes owned by the current user.
func (s *LocalDataSource) GetMyQuizzes(ctx context.Context) ([]domain.Quiz, error) {
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
	return mine, nil
}

// PlayQuiz returns the quiz title and its questions in order with the
// answers withheld. Scoring happens against a separately fetched full quiz.
func (s *LocalDataSource) PlayQuiz(ctx context.Context, id int64) (domain.PlayView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.loadQuizzes(ctx)
	if err != nil {
		return domain.PlayView{}, err
	}
	idx := quizIndex(quizzes, id)
	if idx < 0 {
		return domain.PlayView{}, domain.ErrNotFound
	}

	quiz := quizzes[idx]
	view := domain.PlayView{
		QuizID:    quiz.ID,
		Title:     quiz.Title,
		Questions: make([]domain.PlayQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, domain.PlayQuestion{ID: q.ID, Text: q.Text})
	}
	return view, nil
}

// materializeQuestions assigns fresh ids to a batch of drafts.
func (s *LocalDataSource) materializeQuestions(ctx context.Context, drafts []domain.QuestionDraft) ([]domain.Question, error) {
	ids, err := s.nextIDs(ctx, kindQuestion, len(drafts))
	if err != nil {
		return nil, err
	}
	qs := make([]domain.Question, len(drafts))
	for i, d := range drafts {
		qs[i] = domain.Question{ID: ids[i], Text: d.Text, CorrectAnswer: d.CorrectAnswer}
	}
	return qs, nil
}

func quizIndex(quizzes []domain.Quiz, id int64) int {
	for i := range quizzes {
		if quizzes[i].ID == id {
			return i
		}
	}
	return -1
}
