package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	id "prodauth/pkg/domain"
	dErrors "prodauth/pkg/domain-errors"
)

var (
	aliceAccount = id.MustAccountID("0x1111111111111111111111111111111111111111")
	bobAccount   = id.MustAccountID("0x2222222222222222222222222222222222222222")
)

func TestAuthenticateRoundTrip(t *testing.T) {
	auth := NewAuthenticator("test-signing-key", "prodauth-test")

	token, err := auth.Issue(aliceAccount, time.Minute)
	require.NoError(t, err)

	proven, err := auth.Authenticate(token, aliceAccount)
	require.NoError(t, err)
	require.Equal(t, aliceAccount, proven)
}

func TestAuthenticateWithoutClaim(t *testing.T) {
	auth := NewAuthenticator("test-signing-key", "prodauth-test")

	token, err := auth.Issue(aliceAccount, time.Minute)
	require.NoError(t, err)

	proven, err := auth.Authenticate(token, "")
	require.NoError(t, err)
	require.Equal(t, aliceAccount, proven)
}

func TestAuthenticateRejectsClaimMismatch(t *testing.T) {
	auth := NewAuthenticator("test-signing-key", "prodauth-test")

	token, err := auth.Issue(aliceAccount, time.Minute)
	require.NoError(t, err)

	_, err = auth.Authenticate(token, bobAccount)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestAuthenticateRejectsForeignKey(t *testing.T) {
	issuing := NewAuthenticator("key-one", "prodauth-test")
	verifying := NewAuthenticator("key-two", "prodauth-test")

	token, err := issuing.Issue(aliceAccount, time.Minute)
	require.NoError(t, err)

	_, err = verifying.Authenticate(token, aliceAccount)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	auth := NewAuthenticator("test-signing-key", "prodauth-test")

	token, err := auth.Issue(aliceAccount, -time.Minute)
	require.NoError(t, err)

	_, err = auth.Authenticate(token, aliceAccount)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	auth := NewAuthenticator("test-signing-key", "prodauth-test")

	_, err := auth.Authenticate("not-a-token", aliceAccount)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
