package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "prodauth/pkg/domain"
	dErrors "prodauth/pkg/domain-errors"
)

// Authenticator verifies that the party submitting an operation actually is
// the account it claims to be. A real ledger gets this from transaction
// signatures; here the boundary presents an HS256 token whose subject must
// match the claimed account. Services never see an unauthenticated caller.
type Authenticator struct {
	signingKey []byte
	issuer     string
}

func NewAuthenticator(signingKey string, issuer string) *Authenticator {
	return &Authenticator{signingKey: []byte(signingKey), issuer: issuer}
}

// Issue mints an identity token for account. Used by the boundary adapter and
// by tests; key distribution is outside the core.
func (a *Authenticator) Issue(account id.AccountID, expiresIn time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   account.String(),
		Issuer:    a.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	})
	return token.SignedString(a.signingKey)
}

// Authenticate validates the token and returns the proven account. When
// claimed is non-zero it must equal the token subject, which stops a valid
// token for account A being submitted alongside a claim of account B.
//
// Errors: CodeUnauthorized for any signature, expiry, or mismatch failure.
func (a *Authenticator) Authenticate(tokenString string, claimed id.AccountID) (id.AccountID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.signingKey, nil
	}, jwt.WithIssuer(a.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "identity token rejected")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "identity token has no subject")
	}
	subject, err := id.ParseAccountID(claims.Subject)
	if err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "identity token subject is not an account")
	}
	if !claimed.IsZero() && subject != claimed {
		return "", dErrors.New(dErrors.CodeUnauthorized, "identity token subject does not match claimed account")
	}
	return subject, nil
}
