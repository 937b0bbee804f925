package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// BlobStore abstracts the client-local key-value store. Each collection is
// serialized as a single blob under a fixed key; there are no partial
// updates. Implementations live in internal/infra.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Fixed keys for the persisted collections. Infra implementations prepend
// their own namespace.
const (
	keyUsers       = "users"
	keyQuizzes     = "quizzes"
	keyFriendships = "friendships"
	keyResults     = "results"
	keyCounters    = "counters"
	keySession     = "session"
)

// Counter kinds. IDs are strictly increasing per kind and never reused,
// even after deletion.
const (
	kindUser       = "user"
	kindQuiz       = "quiz"
	kindQuestion   = "question"
	kindFriendship = "friendship"
	kindResult     = "result"
)

func (s *LocalDataSource) loadBlob(ctx context.Context, key string, out interface{}) error {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *LocalDataSource) saveBlob(ctx context.Context, key string, in interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *LocalDataSource) loadUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.loadBlob(ctx, keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *LocalDataSource) saveUsers(ctx context.Context, users []domain.User) error {
	return s.saveBlob(ctx, keyUsers, users)
}

func (s *LocalDataSource) loadQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	var quizzes []domain.Quiz
	if err := s.loadBlob(ctx, keyQuizzes, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *LocalDataSource) saveQuizzes(ctx context.Context, quizzes []domain.Quiz) error {
	return s.saveBlob(ctx, keyQuizzes, quizzes)
}

func (s *LocalDataSource) loadFriendships(ctx context.Context) ([]domain.Friendship, error) {
	var friendships []domain.Friendship
	if err := s.loadBlob(ctx, keyFriendships, &friendships); err != nil {
		return nil, err
	}
	return friendships, nil
}

func (s *LocalDataSource) saveFriendships(ctx context.Context, friendships []domain.Friendship) error {
	return s.saveBlob(ctx, keyFriendships, friendships)
}

func (s *LocalDataSource) loadResults(ctx context.Context) ([]domain.QuizResult, error) {
	var results []domain.QuizResult
	if err := s.loadBlob(ctx, keyResults, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *LocalDataSource) saveResults(ctx context.Context, results []domain.QuizResult) error {
	return s.saveBlob(ctx, keyResults, results)
}

// nextID allocates the next id for an entity kind via a read-modify-write
// of the counters blob.
func (s *LocalDataSource) nextID(ctx context.Context, kind string) (int64, error) {
	ids, err := s.nextIDs(ctx, kind, 1)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// nextIDs allocates n consecutive ids in one counter write. Used when a quiz
// create/edit needs a fresh id per question.
func (s *LocalDataSource) nextIDs(ctx context.Context, kind string, n int) ([]int64, error) {
	counters := map[string]int64{}
	if err := s.loadBlob(ctx, keyCounters, &counters); err != nil {
		return nil, err
	}
	last := counters[kind]
	ids := make([]int64, n)
	for i := range ids {
		last++
		ids[i] = last
	}
	counters[kind] = last
	if err := s.saveBlob(ctx, keyCounters, counters); err != nil {
		return nil, err
	}
	return ids, nil
}
