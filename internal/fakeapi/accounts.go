package fakeapi

import (
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/common"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("bad credentials")
	ErrUserExists     = errors.New("user already exists")
	ErrBadCode        = errors.New("bad verification code")
)

type account struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Email        string
}

type refreshToken struct {
	UserID  int64
	Expires time.Time
}

// accounts keeps users, pending registration codes and refresh tokens in
// memory. Refresh tokens are single use: Rotate deletes the presented token.
type accounts struct {
	mu       sync.Mutex
	nextID   int64
	byName   map[string]*account
	byID     map[int64]*account
	codes    map[string]string
	refresh  map[string]refreshToken
	validity time.Duration
	now      func() time.Time
	cost     int
}

func newAccounts(refreshValidity time.Duration) *accounts {
	return &accounts{
		byName:   map[string]*account{},
		byID:     map[int64]*account{},
		codes:    map[string]string{},
		refresh:  map[string]refreshToken{},
		validity: refreshValidity,
		now:      time.Now,
		cost:     bcrypt.DefaultCost,
	}
}

func (a *accounts) add(username, password, email string) (*account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byName[username]; ok {
		return nil, ErrUserExists
	}
	a.nextID++
	acc := &account{ID: a.nextID, Username: username, PasswordHash: hash, Email: email}
	a.byName[username] = acc
	a.byID[acc.ID] = acc
	return acc, nil
}

// issueCode creates the verification code that register expects for email.
func (a *accounts) issueCode(email string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	code := uuid.NewString()[:6]
	a.codes[email] = code
	return code
}

func (a *accounts) code(email string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.codes[email]
}

func (a *accounts) register(username, password, email, code string) (*account, error) {
	a.mu.Lock()
	want, ok := a.codes[email]
	if ok && want == code {
		delete(a.codes, email)
	}
	a.mu.Unlock()

	if !ok || want != code {
		return nil, ErrBadCode
	}
	return a.add(username, password, email)
}

func (a *accounts) authenticate(username, password string) (*account, error) {
	a.mu.Lock()
	acc, ok := a.byName[username]
	a.mu.Unlock()

	if !ok {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return acc, nil
}

func (a *accounts) newRefreshToken(userID int64) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	token := uuid.NewString()
	a.refresh[token] = refreshToken{UserID: userID, Expires: a.now().Add(a.validity)}
	return token
}

// rotate consumes token and returns the account it belonged to.
func (a *accounts) rotate(token string) (*account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rt, ok := a.refresh[token]
	if !ok {
		return nil, common.ErrInvalidToken
	}
	delete(a.refresh, token)
	if rt.Expires.Before(a.now()) {
		return nil, common.ErrRefreshTokenExpired
	}
	acc, ok := a.byID[rt.UserID]
	if !ok {
		return nil, common.ErrInvalidToken
	}
	return acc, nil
}

// revoke drops the refresh tokens of userID, or every token when userID is 0.
func (a *accounts) revoke(userID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for token, rt := range a.refresh {
		if userID == 0 || rt.UserID == userID {
			delete(a.refresh, token)
		}
	}
}
