package app

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/thallberg/fullstack-quiz-sub000/internal/domain"
)

// Register creates a user, hashes the password, and opens a session for the
// new account. Emails are unique across users, compared case-insensitively.
func (s *LocalDataSource) Register(ctx context.Context, username, email, password string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	if findUserByEmail(users, email) != nil {
		return domain.Identity{}, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.nextID(ctx, kindUser)
	if err != nil {
		return domain.Identity{}, err
	}

	user := domain.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.saveUsers(ctx, append(users, user)); err != nil {
		return domain.Identity{}, err
	}
	if err := s.issueSession(ctx, user); err != nil {
		return domain.Identity{}, err
	}
	s.log.Debug("user registered", "userId", id, "email", email)
	return identityOf(user), nil
}

// Login checks the credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *LocalDataSource) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	user := findUserByEmail(users, email)
	if user == nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	if err := s.issueSession(ctx, *user); err != nil {
		return domain.Identity{}, err
	}
	s.log.Debug("user logged in", "userId", user.ID)
	return identityOf(*user), nil
}

// UpdateProfile changes username and/or email of the current user. An empty
// argument keeps the stored value. The session is re-issued so its embedded
// identity reflects the update.
func (s *LocalDataSource) UpdateProfile(ctx context.Context, username, email string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	if email != "" {
		if existing := findUserByEmail(users, email); existing != nil && existing.ID != user.ID {
			return domain.Identity{}, domain.ErrDuplicateEmail
		}
		user.Email = email
	}
	if username != "" {
		user.Username = username
	}

	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			break
		}
	}
	if err := s.saveUsers(ctx, users); err != nil {
		return domain.Identity{}, err
	}
	if err := s.issueSession(ctx, user); err != nil {
		return domain.Identity{}, err
	}
	return identityOf(user), nil
}

// ChangePassword overwrites the stored hash after verifying the current
// password. Strength rules are a UI concern, not enforced here.
func (s *LocalDataSource) ChangePassword(ctx context.Context, current, updated string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i].PasswordHash = string(hash)
			break
		}
	}
	return s.saveUsers(ctx, users)
}

func findUserByEmail(users []domain.User, email string) *domain.User {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i]
		}
	}
	return nil
}

func findUserByID(users []domain.User, id int64) *domain.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

func identityOf(u domain.User) domain.Identity {
	return domain.Identity{UserID: u.ID, Username: u.Username, Email: u.Email}
}
