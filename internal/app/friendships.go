package app

import (
	"context"

	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// SendFriendInvite creates a pending friendship addressed to the user behind
// the given email. At most one friendship record may exist per user pair, in
// either direction.
func (s *LocalDataSource) SendFriendInvite(ctx context.Context, email string) (domain.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return domain.Friendship{}, err
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.Friendship{}, err
	}
	addressee := findUserByEmail(users, email)
	if addressee == nil {
		return domain.Friendship{}, domain.ErrNotFound
	}
	if addressee.ID == user.ID {
		return domain.Friendship{}, domain.ErrSelfInvite
	}

	friendships, err := s.loadFriendships(ctx)
	if err != nil {
		return domain.Friendship{}, err
	}
	for _, f := range friendships {
		if f.Touches(user.ID) && f.Touches(addressee.ID) {
			if f.Status == domain.FriendshipAccepted {
				return domain.Friendship{}, domain.ErrAlreadyFriends
			}
			return domain.Friendship{}, domain.ErrAlreadyPending
		}
	}

	id, err := s.nextID(ctx, kindFriendship)
	if err != nil {
		return domain.Friendship{}, err
	}
	friendship := domain.Friendship{
		ID:             id,
		RequesterID:    user.ID,
		RequesterName:  user.Username,
		RequesterEmail: user.Email,
		AddresseeID:    addressee.ID,
		AddresseeName:  addressee.Username,
		AddresseeEmail: addressee.Email,
		Status:         domain.FriendshipPending,
		CreatedAt:      s.now(),
	}
	if err := s.saveFriendships(ctx, append(friendships, friendship)); err != nil {
		return domain.Friendship{}, err
	}
	s.log.Debug("invite sent", "friendshipId", id, "from", user.ID, "to", addressee.ID)
	return friendship, nil
}

// AcceptFriendInvite flips a pending friendship to accepted and stamps the
// acceptance time. Only the addressee may accept; anything else is reported
// as not found.
func (s *LocalDataSource) AcceptFriendInvite(ctx context.Context, id int64) (domain.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return domain.Friendship{}, err
	}
	friendships, err := s.loadFriendships(ctx)
	if err != nil {
		return domain.Friendship{}, err
	}
	idx := pendingInviteIndex(friendships, id, user.ID)
	if idx < 0 {
		return domain.Friendship{}, domain.ErrNotFound
	}

	accepted := s.now()
	friendships[idx].Status = domain.FriendshipAccepted
	friendships[idx].AcceptedAt = &accepted
	if err := s.saveFriendships(ctx, friendships); err != nil {
		return domain.Friendship{}, err
	}
	return friendships[idx], nil
}

// DeclineFriendInvite deletes a pending friendship addressed to the current
// user. Declined invites are not kept as a status.
func (s *LocalDataSource) DeclineFriendInvite(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	friendships, err := s.loadFriendships(ctx)
	if err != nil {
		return err
	}
	idx := pendingInviteIndex(friendships, id, user.ID)
	if idx < 0 {
		return domain.ErrNotFound
	}
	return s.saveFriendships(ctx, append(friendships[:idx], friendships[idx+1:]...))
}

// GetPendingInvites lists pending friendships addressed to the current user.
func (s *LocalDataSource) GetPendingInvites(ctx context.Context) ([]domain.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	friendships, err := s.loadFriendships(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]domain.Friendship, 0)
	for _, f := range friendships {
		if f.Status == domain.FriendshipPending && f.AddresseeID == user.ID {
			pending = append(pending, f)
		}
	}
	return pending, nil
}

// GetFriends lists the accepted friendships of the current user with the
// opposite party's cached summary.
func (s *LocalDataSource) GetFriends(ctx context.Context) ([]domain.FriendSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	friendships, err := s.loadFriendships(ctx)
	if err != nil {
		return nil, err
	}
	friends := make([]domain.FriendSummary, 0)
	for _, f := range friendships {
		if f.Status != domain.FriendshipAccepted || !f.Touches(user.ID) {
			continue
		}
		otherID, name, email := f.Other(user.ID)
		since := f.CreatedAt
		if f.AcceptedAt != nil {
			since = *f.AcceptedAt
		}
		friends = append(friends, domain.FriendSummary{
			FriendshipID: f.ID,
			UserID:       otherID,
			Username:     name,
			Email:        email,
			Since:        since,
		})
	}
	return friends, nil
}

// RemoveFriend deletes an accepted friendship. Either party may remove it.
func (s *LocalDataSource) RemoveFriend(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	friendships, err := s.loadFriendships(ctx)
	if err != nil {
		return err
	}
	for i, f := range friendships {
		if f.ID == id && f.Status == domain.FriendshipAccepted && f.Touches(user.ID) {
			return s.saveFriendships(ctx, append(friendships[:i], friendships[i+1:]...))
		}
	}
	return domain.ErrNotFound
}

// friendIDs resolves the friend-id set for a user from accepted friendships.
// Recomputed on every call; storage is always re-read so there is nothing to
// invalidate.
func friendIDs(friendships []domain.Friendship, userID int64) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, f := range friendships {
		if f.Status != domain.FriendshipAccepted || !f.Touches(userID) {
			continue
		}
		other, _, _ := f.Other(userID)
		ids[other] = struct{}{}
	}
	return ids
}

func pendingInviteIndex(friendships []domain.Friendship, id, addresseeID int64) int {
	for i, f := range friendships {
		if f.ID == id && f.Status == domain.FriendshipPending && f.AddresseeID == addresseeID {
			return i
		}
	}
	return -1
}
