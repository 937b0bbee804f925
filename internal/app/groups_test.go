package app_test

import (
	"context"
	"testing"

	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// Scenario: alice's private quiz is invisible to bob until he becomes her
// friend, then shows up in his friends group.
func TestPrivateQuizVisibility(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDataSource(t)

	alice, err := ds.Register(ctx, "alice", "alice@x.com", "p")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	capitals, err := ds.CreateQuiz(ctx, "Capitals", "", false, capitalsDrafts())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if _, err := ds.Register(ctx, "bob", "bob@x.com", "p"); err != nil {
		t.Fatalf("register bob: %v", err)
	}
	groups, err := ds.GetAllQuizzes(ctx)
	if err != nil {
		t.Fatalf("get all quizzes: %v", err)
	}
	if containsQuiz(groups.Friends, capitals.ID) || containsQuiz(groups.Others, capitals.ID) {
		t.Fatalf("private quiz leaked to a stranger: %+v", groups)
	}

	// bob invites alice, alice accepts, bob looks again.
	if _, err := ds.SendFriendInvite(ctx, alice.Email); err != nil {
		t.Fatalf("send invite: %v", err)
	}
	if _, err := ds.Login(ctx, alice.Email, "p"); err != nil {
		t.Fatalf("login alice: %v", err)
	}
	pending, err := ds.GetPendingInvites(ctx)
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending invites: %v %+v", err, pending)
	}
	if _, err := ds.AcceptFriendInvite(ctx, pending[0].ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := ds.Login(ctx, "bob@x.com", "p"); err != nil {
		t.Fatalf("login bob: %v", err)
	}
	groups, err = ds.GetAllQuizzes(ctx)
	if err != nil {
		t.Fatalf("get all quizzes: %v", err)
	}
	if !containsQuiz(groups.Friends, capitals.ID) {
		t.Fatalf("expected private quiz in friends group after accept: %+v", groups)
	}
	if containsQuiz(groups.Others, capitals.ID) || containsQuiz(groups.Mine, capitals.ID) {
		t.Fatalf("quiz appeared in more than one group: %+v", groups)
	}
}

func TestGroupsPartitionExhaustiveAndDisjoint(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDataSource(t)

	alice, err := ds.Register(ctx, "alice", "alice@x.com", "p")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if _, err := ds.CreateQuiz(ctx, "alice public", "", true, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := ds.CreateQuiz(ctx, "alice private", "", false, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := ds.Register(ctx, "carol", "carol@x.com", "p"); err != nil {
		t.Fatalf("register carol: %v", err)
	}
	if _, err := ds.CreateQuiz(ctx, "carol public", "", true, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := ds.CreateQuiz(ctx, "carol private", "", false, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	bob, err := ds.Register(ctx, "bob", "bob@x.com", "p")
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}
	if _, err := ds.CreateQuiz(ctx, "bob quiz", "", false, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := ds.SendFriendInvite(ctx, alice.Email); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := ds.Login(ctx, alice.Email, "p"); err != nil {
		t.Fatalf("login alice: %v", err)
	}
	pending, _ := ds.GetPendingInvites(ctx)
	if _, err := ds.AcceptFriendInvite(ctx, pending[0].ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := ds.Login(ctx, "bob@x.com", "p"); err != nil {
		t.Fatalf("login bob: %v", err)
	}

	groups, err := ds.GetAllQuizzes(ctx)
	if err != nil {
		t.Fatalf("get all quizzes: %v", err)
	}

	// No quiz may appear in two groups.
	seen := make(map[int64]int)
	for _, q := range groups.Mine {
		seen[q.ID]++
		if q.OwnerID != bob.UserID {
			t.Fatalf("foreign quiz in mine: %+v", q)
		}
	}
	for _, q := range groups.Friends {
		seen[q.ID]++
		if q.OwnerID != alice.UserID {
			t.Fatalf("non-friend quiz in friends: %+v", q)
		}
	}
	for _, q := range groups.Others {
		seen[q.ID]++
		if !q.IsPublic {
			t.Fatalf("private quiz in others: %+v", q)
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Fatalf("quiz %d appeared in %d groups", id, n)
		}
	}

	// bob sees: his own quiz, both of alice's (friend, visibility ignored),
	// and carol's public one. Carol's private quiz is in no group.
	if len(groups.Mine) != 1 || len(groups.Friends) != 2 || len(groups.Others) != 1 {
		t.Fatalf("unexpected partition sizes mine=%d friends=%d others=%d",
			len(groups.Mine), len(groups.Friends), len(groups.Others))
	}
}

func TestAnonymousViewerSeesOnlyPublicOthers(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDataSource(t)

	if _, err := ds.Register(ctx, "alice", "alice@x.com", "p"); err != nil {
		t.Fatalf("register: %v", err)
	}
	pub, err := ds.CreateQuiz(ctx, "public", "", true, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := ds.CreateQuiz(ctx, "private", "", false, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ds.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	groups, err := ds.GetAllQuizzes(ctx)
	if err != nil {
		t.Fatalf("get all quizzes: %v", err)
	}
	if len(groups.Mine) != 0 || len(groups.Friends) != 0 {
		t.Fatalf("anonymous viewer got personal groups: %+v", groups)
	}
	if len(groups.Others) != 1 || groups.Others[0].ID != pub.ID {
		t.Fatalf("expected only the public quiz, got %+v", groups.Others)
	}
}

func containsQuiz(quizzes []domain.Quiz, id int64) bool {
	for _, q := range quizzes {
		if q.ID == id {
			return true
		}
	}
	return false
}
