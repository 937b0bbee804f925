package app

import (
	"context"

	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// GetAllQuizzes partitions the quiz collection for the current viewer into
// mine, friends', and public others'. An unauthenticated viewer gets only
// the public others.
func (s *LocalDataSource) GetAllQuizzes(ctx context.Context) (domain.QuizGroups, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groupedQuizzes(ctx)
}

func (s *LocalDataSource) groupedQuizzes(ctx context.Context) (domain.QuizGroups, error) {
	quizzes, err := s.loadQuizzes(ctx)
	if err != nil {
		return domain.QuizGroups{}, err
	}

	identity, ok, err := s.currentIdentity(ctx)
	if err != nil {
		return domain.QuizGroups{}, err
	}
	if !ok {
		return groupQuizzes(0, quizzes, nil), nil
	}

	friendships, err := s.loadFriendships(ctx)
	if err != nil {
		return domain.QuizGroups{}, err
	}
	return groupQuizzes(identity.UserID, quizzes, friendIDs(friendships, identity.UserID)), nil
}

// groupQuizzes performs the three-way partition. The groups are exhaustive
// and non-overlapping: each quiz lands in exactly one of them, except a
// private quiz owned by a stranger, which lands in none. Friends see private
// quizzes too; the visibility flag only gates strangers. viewerID 0 means
// unauthenticated.
func groupQuizzes(viewerID int64, quizzes []domain.Quiz, friends map[int64]struct{}) domain.QuizGroups {
	groups := domain.QuizGroups{
		Mine:    make([]domain.Quiz, 0),
		Friends: make([]domain.Quiz, 0),
		Others:  make([]domain.Quiz, 0),
	}
	for _, q := range quizzes {
		switch {
		case viewerID != 0 && q.OwnerID == viewerID:
			groups.Mine = append(groups.Mine, q)
		case isFriend(friends, q.OwnerID):
			groups.Friends = append(groups.Friends, q)
		case q.IsPublic:
			groups.Others = append(groups.Others, q)
		}
	}
	return groups
}

func isFriend(friends map[int64]struct{}, ownerID int64) bool {
	_, ok := friends[ownerID]
	return ok
}
