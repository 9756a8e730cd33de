package seat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	iss, err := NewIssuer("s3cret", time.Hour)
	require.NoError(t, err)

	tok, err := iss.Issue("g1", "p2")
	require.NoError(t, err)

	c, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "g1", c.GameID)
	assert.Equal(t, "p2", c.PlayerID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.Expires, 5*time.Second)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	a, err := NewIssuer("one", time.Hour)
	require.NoError(t, err)
	b, err := NewIssuer("two", time.Hour)
	require.NoError(t, err)

	tok, err := a.Issue("g1", "p1")
	require.NoError(t, err)
	_, err = b.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	iss, err := NewIssuer("s3cret", time.Minute)
	require.NoError(t, err)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := iss.Issue("g1", "p1")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRandomSecretWhenUnset(t *testing.T) {
	a, err := NewIssuer("", 0)
	require.NoError(t, err)
	b, err := NewIssuer("", 0)
	require.NoError(t, err)
	tok, err := a.Issue("g1", "p1")
	require.NoError(t, err)
	_, err = a.Verify(tok)
	require.NoError(t, err)
	_, err = b.Verify(tok)
	assert.Error(t, err)
}
