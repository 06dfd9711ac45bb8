package auth_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiempleados/api-empleados/internal/auth"
	"github.com/apiempleados/api-empleados/internal/shared"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := newTokenService(t)
	cases := []auth.RoleSet{
		auth.NewRoleSet(auth.RoleUser),
		auth.NewRoleSet(auth.RoleUser, auth.RoleAdmin),
		auth.NewRoleSet("ROLE_AUDITOR", "ROLE_HR", "ROLE_USER"),
	}
	for _, roles := range cases {
		token, err := svc.Issue("a@x.com", roles)
		require.NoError(t, err)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Subject)
		assert.Equal(t, roles, claims.Roles)
	}
}

func TestTokenClaimSet(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTokenService(t, auth.WithClock(fixedClock(issuedAt)))

	token, err := svc.Issue("a@x.com", auth.NewRoleSet(auth.RoleUser))
	require.NoError(t, err)

	raw := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, raw)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", raw["sub"])
	assert.Equal(t, auth.DefaultIssuer, raw["iss"])
	assert.Equal(t, "ROLE_USER", raw["roles"])
	assert.EqualValues(t, issuedAt.Unix(), raw["iat"])
	assert.EqualValues(t, issuedAt.Unix()+86400, raw["exp"])

	header := strings.SplitN(token, ".", 2)[0]
	decoded, err := base64.RawURLEncoding.DecodeString(header)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), `"alg":"HS256"`)
}

func TestTokenExpired(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	issuer := newTokenService(t, auth.WithClock(fixedClock(issuedAt)))
	token, err := issuer.Issue("a@x.com", auth.NewRoleSet(auth.RoleUser))
	require.NoError(t, err)

	stillValid := newTokenService(t, auth.WithClock(fixedClock(issuedAt.Add(23*time.Hour))))
	_, err = stillValid.Decode(token)
	require.NoError(t, err)

	later := newTokenService(t, auth.WithClock(fixedClock(issuedAt.Add(25*time.Hour))))
	_, err = later.Decode(token)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestTokenRejectsForeignKeyAndTampering(t *testing.T) {
	svc := newTokenService(t)
	token, err := svc.Issue("a@x.com", auth.NewRoleSet(auth.RoleUser))
	require.NoError(t, err)

	otherKey, err := auth.GenerateSigningKey()
	require.NoError(t, err)
	other, err := auth.NewTokenService(otherKey)
	require.NoError(t, err)
	_, err = other.Decode(token)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged, err := svc.Issue("admin@x.com", auth.NewRoleSet(auth.RoleAdmin))
	require.NoError(t, err)
	swapped := strings.Split(forged, ".")[1]
	_, err = svc.Decode(parts[0] + "." + swapped + "." + parts[2])
	assert.ErrorIs(t, err, shared.ErrInvalidToken)

	for _, malformed := range []string{"", "abc", "a.b.c", token + "x"} {
		_, err = svc.Decode(malformed)
		assert.ErrorIs(t, err, shared.ErrInvalidToken, malformed)
	}
}

func TestTokenRejectsNoneAlgorithmAndForeignIssuer(t *testing.T) {
	svc := newTokenService(t)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "a@x.com",
		"iss": auth.DefaultIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Decode(unsigned)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)

	foreign := newTokenService(t, auth.WithIssuer("another-api"))
	token, err := foreign.Issue("a@x.com", auth.NewRoleSet(auth.RoleUser))
	require.NoError(t, err)
	_, err = svc.Decode(token)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestSigningKeyConstraints(t *testing.T) {
	_, err := auth.NewSigningKey([]byte("short"))
	assert.ErrorIs(t, err, auth.ErrWeakSigningKey)

	_, err = auth.NewTokenService(auth.SigningKey{})
	assert.ErrorIs(t, err, auth.ErrWeakSigningKey)

	encoded := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	key, err := auth.ParseSigningKey(encoded)
	require.NoError(t, err)
	svc, err := auth.NewTokenService(key)
	require.NoError(t, err)

	token, err := svc.Issue("a@x.com", auth.NewRoleSet(auth.RoleUser))
	require.NoError(t, err)
	_, err = newTokenService(t).Decode(token)
	assert.NoError(t, err, "same key material must verify across instances")

	_, err = auth.ParseSigningKey("***not base64***")
	assert.Error(t, err)
}

func TestTokenTTLOverride(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTokenService(t, auth.WithTTL(time.Hour), auth.WithClock(fixedClock(issuedAt)))
	assert.Equal(t, time.Hour, svc.TTL())

	token, err := svc.Issue("a@x.com", auth.NewRoleSet(auth.RoleUser))
	require.NoError(t, err)
	claims, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}
