package fakeapi

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAccounts() *accounts {
	a := newAccounts(time.Hour)
	a.cost = bcrypt.MinCost
	return a
}

func TestAccounts_StoresPasswordHash(t *testing.T) {
	a := newTestAccounts()

	acc, err := a.add("alice", "s3cret", "alice@example.org")
	require.NoError(t, err)

	assert.NotEqual(t, []byte("s3cret"), acc.PasswordHash)
	assert.True(t, strings.HasPrefix(string(acc.PasswordHash), "$2a$"))
	require.NoError(t, bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte("s3cret")))
}

func TestAccounts_Authenticate(t *testing.T) {
	a := newTestAccounts()
	_, err := a.add("alice", "s3cret", "alice@example.org")
	require.NoError(t, err)

	acc, err := a.authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Username)

	_, err = a.authenticate("alice", "wrong")
	require.ErrorIs(t, err, ErrBadCredentials)

	_, err = a.authenticate("nobody", "s3cret")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestAccounts_AddRejectsDuplicateAndLongPassword(t *testing.T) {
	a := newTestAccounts()
	_, err := a.add("alice", "pw", "a@example.org")
	require.NoError(t, err)

	_, err = a.add("alice", "other", "b@example.org")
	require.ErrorIs(t, err, ErrUserExists)

	_, err = a.add("bob", strings.Repeat("x", 73), "bob@example.org")
	require.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestAccounts_RegisterConsumesCode(t *testing.T) {
	a := newTestAccounts()
	code := a.issueCode("carol@example.org")

	_, err := a.register("carol", "pw", "carol@example.org", "nope")
	require.ErrorIs(t, err, ErrBadCode)

	acc, err := a.register("carol", "pw", "carol@example.org", code)
	require.NoError(t, err)
	assert.Equal(t, "carol", acc.Username)
	assert.Empty(t, a.code("carol@example.org"))

	_, err = a.authenticate("carol", "pw")
	require.NoError(t, err)
}

func TestAccounts_RotateAndRevoke(t *testing.T) {
	a := newTestAccounts()
	acc, err := a.add("dave", "pw", "d@example.org")
	require.NoError(t, err)

	token := a.newRefreshToken(acc.ID)
	got, err := a.rotate(token)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = a.rotate(token)
	require.ErrorIs(t, err, common.ErrInvalidToken, "refresh tokens are single use")

	expired := a.newRefreshToken(acc.ID)
	a.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = a.rotate(expired)
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)

	a.now = time.Now
	revoked := a.newRefreshToken(acc.ID)
	a.revoke(acc.ID)
	_, err = a.rotate(revoked)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
