package authtoken

import (
	"strings"
	"testing"

	"github.com/akashmaji946/gomixvm/value"
	"github.com/stretchr/testify/require"
)

func claimsValue(pairs map[string]string) value.Value {
	m := &value.Map{}
	for k, v := range pairs {
		m.Keys = append(m.Keys, value.String(k))
		m.Values = append(m.Values, value.String(v))
	}
	return value.MapOf(m)
}

func TestSignThenVerifySucceeds(t *testing.T) {
	claims := claimsValue(map[string]string{"sub": "alice"})
	token, err := jwtSign([]value.Value{claims, value.String("secret")})
	require.NoError(t, err)

	ok, err := jwtVerify([]value.Value{token, value.String("secret")})
	require.NoError(t, err)
	require.True(t, ok.AsBool())
}

func TestVerifyFailsWithWrongSecret(t *testing.T) {
	claims := claimsValue(map[string]string{"sub": "alice"})
	token, err := jwtSign([]value.Value{claims, value.String("secret")})
	require.NoError(t, err)

	ok, err := jwtVerify([]value.Value{token, value.String("wrong")})
	require.NoError(t, err)
	require.False(t, ok.AsBool())
}

func TestVerifyMalformedTokenIsFalseNotError(t *testing.T) {
	ok, err := jwtVerify([]value.Value{value.String("not-a-jwt"), value.String("secret")})
	require.NoError(t, err)
	require.False(t, ok.AsBool())
}

func TestSignWithNonMapClaimsProducesEmptyClaimSet(t *testing.T) {
	token, err := jwtSign([]value.Value{value.Nil(), value.String("secret")})
	require.NoError(t, err)
	require.NotEmpty(t, token.AsString())
	// base64url of "{}" is "e30".
	require.Equal(t, "e30", strings.Split(token.AsString(), ".")[1])
}
