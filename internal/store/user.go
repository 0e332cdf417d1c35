package store

import "time"

// User is a team member of the workspace.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RefreshToken is an opaque session token handed out on login.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

func cloneUser(u *User) User {
	out := *u
	out.Avatar = cloneStringPtr(u.Avatar)
	return out
}

// CreateUser appends a user. Emails are unique.
func (s *Store) CreateUser(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.userOrder {
		if s.users[id].Email == u.Email {
			return ErrConflict
		}
	}

	u.ID = newID()
	u.CreatedAt = time.Now()

	stored := cloneUser(u)
	s.users[u.ID] = &stored
	s.userOrder = append(s.userOrder, u.ID)
	return nil
}

// GetUser returns the user or ErrNotFound.
func (s *Store) GetUser(userID string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return cloneUser(u), nil
}

// FindUserByEmail returns the user with this email or ErrNotFound.
func (s *Store) FindUserByEmail(email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if s.users[id].Email == email {
			return cloneUser(s.users[id]), nil
		}
	}
	return User{}, ErrNotFound
}

// FindUserByName returns the user with this display name or ErrNotFound.
// Deal assignment uses team-member names.
func (s *Store) FindUserByName(name string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if s.users[id].Name == name {
			return cloneUser(s.users[id]), nil
		}
	}
	return User{}, ErrNotFound
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, cloneUser(s.users[id]))
	}
	return out
}

// SaveRefreshToken stores a refresh token.
func (s *Store) SaveRefreshToken(rt *RefreshToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *rt
	s.refreshTokens[rt.Token] = &stored
}

// FindRefreshToken returns the token record or ErrNotFound.
func (s *Store) FindRefreshToken(token string) (RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, ok := s.refreshTokens[token]
	if !ok {
		return RefreshToken{}, ErrNotFound
	}
	return *rt, nil
}

// DeleteRefreshToken drops a refresh token. Unknown tokens are a no-op.
func (s *Store) DeleteRefreshToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refreshTokens, token)
}
