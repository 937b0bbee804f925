package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// sessionClaims is the capsule carried by the session token: enough identity
// to resolve the current user without touching the user collection.
type sessionClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// issueSession signs a token for the user and stores it as the current
// session. Called on register, login, and profile update.
func (s *LocalDataSource) issueSession(ctx context.Context, user domain.User) error {
	now := s.now()
	claims := sessionClaims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	if err := s.store.Set(ctx, keySession, []byte(token)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// currentIdentity decodes the stored session token. A missing, malformed, or
// expired token means "no session" and never surfaces as an error; the stale
// token is left in place.
func (s *LocalDataSource) currentIdentity(ctx context.Context) (domain.Identity, bool, error) {
	raw, ok, err := s.store.Get(ctx, keySession)
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return domain.Identity{}, false, nil
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(string(raw), &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return domain.Identity{}, false, nil
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Identity{}, false, nil
	}
	return domain.Identity{
		UserID:   userID,
		Username: claims.Username,
		Email:    claims.Email,
	}, true, nil
}

// requireUser resolves the current session into the stored user record.
// Returns ErrUnauthenticated when no session is active or the record no
// longer exists.
func (s *LocalDataSource) requireUser(ctx context.Context) (domain.User, error) {
	identity, ok, err := s.currentIdentity(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, domain.ErrUnauthenticated
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.ID == identity.UserID {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUnauthenticated
}

// CurrentUser resolves the identity embedded in the stored session token, if
// a valid one exists.
func (s *LocalDataSource) CurrentUser(ctx context.Context) (domain.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIdentity(ctx)
}

// Logout clears the stored session.
func (s *LocalDataSource) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, keySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
