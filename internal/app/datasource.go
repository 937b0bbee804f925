package app

import (
	"context"
	"sync"
	"time"

	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
	"github.com/thallberg/fullstack-quiz-sub000/internal/logger"
)

// DataSource is the single boundary the rest of an application depends on.
// The local simulation below and a remote-API-backed client both satisfy it,
// so the two are interchangeable.
type DataSource interface {
	// Auth.
	Register(ctx context.Context, username, email, password string) (domain.Identity, error)
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	UpdateProfile(ctx context.Context, username, email string) (domain.Identity, error)
	ChangePassword(ctx context.Context, current, updated string) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (domain.Identity, bool, error)

	// Quizzes.
	GetAllQuizzes(ctx context.Context) (domain.QuizGroups, error)
	GetQuizByID(ctx context.Context, id int64) (domain.Quiz, error)
	GetMyQuizzes(ctx context.Context) ([]domain.Quiz, error)
	CreateQuiz(ctx context.Context, title, description string, isPublic bool, questions []domain.QuestionDraft) (domain.Quiz, error)
	UpdateQuiz(ctx context.Context, id int64, title, description string, isPublic bool, questions []domain.QuestionDraft) (domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) error
	PlayQuiz(ctx context.Context, id int64) (domain.PlayView, error)

	// Results and leaderboards.
	SubmitQuizResult(ctx context.Context, quizID int64, score, totalQuestions, percentage int) error
	ResultsForQuiz(ctx context.Context, quizID int64) ([]domain.ResultRow, error)
	GetLeaderboard(ctx context.Context) (domain.Leaderboard, error)
	GetMyLeaderboard(ctx context.Context) ([]domain.QuizStanding, error)

	// Friendships.
	SendFriendInvite(ctx context.Context, email string) (domain.Friendship, error)
	AcceptFriendInvite(ctx context.Context, id int64) (domain.Friendship, error)
	DeclineFriendInvite(ctx context.Context, id int64) error
	GetPendingInvites(ctx context.Context) ([]domain.Friendship, error)
	GetFriends(ctx context.Context) ([]domain.FriendSummary, error)
	RemoveFriend(ctx context.Context, id int64) error
}

// Options tunes the local datasource. Zero values fall back to defaults.
type Options struct {
	// SessionTTL bounds how long an issued session stays valid.
	SessionTTL time.Duration
	// SessionSecret signs session tokens. The default is fine for a purely
	// local simulation; anything real must supply its own.
	SessionSecret string
	// LeaderboardSize caps the ranked results attached per quiz.
	LeaderboardSize int
}

const (
	defaultSessionTTL      = 7 * 24 * time.Hour
	defaultLeaderboardSize = 5
	defaultSessionSecret   = "local-simulation-secret"
)

// LocalDataSource reproduces the remote API's relational behavior on top of
// a client-local blob store. Every operation is a synchronous
// read-modify-write of whole collections; one mutex serializes them so the
// process is a single writer.
type LocalDataSource struct {
	store  BlobStore
	log    *logger.Logger
	secret []byte
	ttl    time.Duration
	topN   int
	now    func() time.Time

	mu sync.Mutex
}

var _ DataSource = (*LocalDataSource)(nil)

// NewLocalDataSource builds a datasource over the given blob store. A nil
// logger is replaced with a no-op one.
func NewLocalDataSource(store BlobStore, log *logger.Logger, opts Options) *LocalDataSource {
	return NewLocalDataSourceWithClock(store, log, opts, time.Now)
}

// NewLocalDataSourceWithClock allows deterministic timestamps in tests.
func NewLocalDataSourceWithClock(store BlobStore, log *logger.Logger, opts Options, now func() time.Time) *LocalDataSource {
	if log == nil {
		log = logger.Nop()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.SessionSecret == "" {
		opts.SessionSecret = defaultSessionSecret
	}
	if opts.LeaderboardSize <= 0 {
		opts.LeaderboardSize = defaultLeaderboardSize
	}
	return &LocalDataSource{
		store:  store,
		log:    log,
		secret: []byte(opts.SessionSecret),
		ttl:    opts.SessionTTL,
		topN:   opts.LeaderboardSize,
		now:    now,
	}
}
