package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/thallberg/fullstack-quiz-sub000/internal/app"
	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

func registerPair(t *testing.T, ds *app.LocalDataSource) (alice, bob domain.Identity) {
	t.Helper()
	ctx := context.Background()
	alice, err := ds.Register(ctx, "alice", "alice@x.com", "p")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	bob, err = ds.Register(ctx, "bob", "bob@x.com", "p")
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}
	return alice, bob
}

func TestInviteLifecycle(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDataSource(t)
	alice, bob := registerPair(t, ds)

	// Session currently belongs to bob (last registration).
	invite, err := ds.SendFriendInvite(ctx, alice.Email)
	if err != nil {
		t.Fatalf("send invite: %v", err)
	}
	if invite.Status != domain.FriendshipPending || invite.RequesterID != bob.UserID || invite.AddresseeID != alice.UserID {
		t.Fatalf("unexpected invite %+v", invite)
	}
	if invite.RequesterName != "bob" || invite.AddresseeName != "alice" {
		t.Fatalf("cached names missing: %+v", invite)
	}

	// The requester has no incoming invites; the addressee does.
	pending, err := ds.GetPendingInvites(ctx)
	if err != nil {
		t.Fatalf("pending invites: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("requester should see no incoming invites, got %+v", pending)
	}

	if _, err := ds.Login(ctx, alice.Email, "p"); err != nil {
		t.Fatalf("login alice: %v", err)
	}
	pending, err = ds.GetPendingInvites(ctx)
	if err != nil {
		t.Fatalf("pending invites: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != invite.ID {
		t.Fatalf("expected the invite, got %+v", pending)
	}

	accepted, err := ds.AcceptFriendInvite(ctx, invite.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != domain.FriendshipAccepted || accepted.AcceptedAt == nil {
		t.Fatalf("expected accepted with timestamp, got %+v", accepted)
	}

	friends, err := ds.GetFriends(ctx)
	if err != nil {
		t.Fatalf("get friends: %v", err)
	}
	if len(friends) != 1 || friends[0].UserID != bob.UserID || friends[0].Username != "bob" {
		t.Fatalf("expected bob as friend, got %+v", friends)
	}
}

func TestInviteConflicts(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDataSource(t)
	alice, _ := registerPair(t, ds)

	// Self invite (bob holds the session).
	if _, err := ds.SendFriendInvite(ctx, "bob@x.com"); !errors.Is(err, domain.ErrSelfInvite) {
		t.Fatalf("expected self invite error, got %v", err)
	}
	// Unknown email.
	if _, err := ds.SendFriendInvite(ctx, "nobody@x.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	invite, err := ds.SendFriendInvite(ctx, alice.Email)
	if err != nil {
		t.Fatalf("send invite: %v", err)
	}
	// Second invite for the pair, same direction.
	if _, err := ds.SendFriendInvite(ctx, alice.Email); !errors.Is(err, domain.ErrAlreadyPending) {
		t.Fatalf("expected already pending, got %v", err)
	}
	// Opposite direction collides with the same record.
	if _, err := ds.Login(ctx, alice.Email, "p"); err != nil {
		t.Fatalf("login alice: %v", err)
	}
	if _, err := ds.SendFriendInvite(ctx, "bob@x.com"); !errors.Is(err, domain.ErrAlreadyPending) {
		t.Fatalf("expected already pending in reverse, got %v", err)
	}

	if _, err := ds.AcceptFriendInvite(ctx, invite.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := ds.SendFriendInvite(ctx, "bob@x.com"); !errors.Is(err, domain.ErrAlreadyFriends) {
		t.Fatalf("expected already friends, got %v", err)
	}
}

func TestOnlyAddresseeMayAccept(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDataSource(t)
	alice, _ := registerPair(t, ds)

	invite, err := ds.SendFriendInvite(ctx, alice.Email)
	if err != nil {
		t.Fatalf("send invite: %v", err)
	}
	// bob is the requester; he cannot accept his own invite.
	if _, err := ds.AcceptFriendInvite(ctx, invite.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for requester accept, got %v", err)
	}
	if err := ds.DeclineFriendInvite(ctx, invite.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for requester decline, got %v", err)
	}
}

func TestDeclineDeletesRecord(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDataSource(t)
	alice, _ := registerPair(t, ds)

	invite, err := ds.SendFriendInvite(ctx, alice.Email)
	if err != nil {
		t.Fatalf("send invite: %v", err)
	}
	if _, err := ds.Login(ctx, alice.Email, "p"); err != nil {
		t.Fatalf("login alice: %v", err)
	}
	if err := ds.DeclineFriendInvite(ctx, invite.ID); err != nil {
		t.Fatalf("decline: %v", err)
	}

	// Declining removes the record, so a fresh invite is allowed again.
	if _, err := ds.SendFriendInvite(ctx, "bob@x.com"); err != nil {
		t.Fatalf("re-invite after decline: %v", err)
	}
}

func TestRemoveFriendEitherParty(t *testing.T) {
	ctx := context.Background()
	ds, _ := newTestDataSource(t)
	alice, _ := registerPair(t, ds)

	invite, err := ds.SendFriendInvite(ctx, alice.Email)
	if err != nil {
		t.Fatalf("send invite: %v", err)
	}
	// Pending friendships cannot be removed, only declined.
	if err := ds.RemoveFriend(ctx, invite.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for pending removal, got %v", err)
	}

	if _, err := ds.Login(ctx, alice.Email, "p"); err != nil {
		t.Fatalf("login alice: %v", err)
	}
	if _, err := ds.AcceptFriendInvite(ctx, invite.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// The requester (bob) may remove the accepted friendship too.
	if _, err := ds.Login(ctx, "bob@x.com", "p"); err != nil {
		t.Fatalf("login bob: %v", err)
	}
	if err := ds.RemoveFriend(ctx, invite.ID); err != nil {
		t.Fatalf("remove friend: %v", err)
	}
	friends, err := ds.GetFriends(ctx)
	if err != nil {
		t.Fatalf("get friends: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("expected no friends, got %+v", friends)
	}
}
