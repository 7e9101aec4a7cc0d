package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blood-bank-service/internal/config"
	"github.com/spec-kit/blood-bank-service/internal/domain"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleClaims() Claims {
	return Claims{ID: "c1f0b0a4-1111-4222-8333-944455556666", Email: "jo@x.com", Role: domain.RoleDonor}
}

func codecs(now func() time.Time) map[string]Codec {
	return map[string]Codec{
		"signed": NewTokenManager("test-secret", WithClock(now)),
		"legacy": NewLegacyCodec(WithClock(now)),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	for name, codec := range codecs(clockAt(fixedNow)) {
		t.Run(name, func(t *testing.T) {
			in := sampleClaims()
			token, err := codec.Encode(in)
			require.NoError(t, err)

			out, err := codec.Decode(token)
			require.NoError(t, err)

			want := in
			want.Exp = fixedNow.Add(DefaultTokenTTL).UnixMilli()
			assert.Equal(t, want, *out)
			assert.Equal(t, int64(604_800_000), out.Exp-fixedNow.UnixMilli())
		})
	}
}

func TestCodec_EncodeIsDeterministicForFixedClock(t *testing.T) {
	for name, codec := range codecs(clockAt(fixedNow)) {
		t.Run(name, func(t *testing.T) {
			a, err := codec.Encode(sampleClaims())
			require.NoError(t, err)
			b, err := codec.Encode(sampleClaims())
			require.NoError(t, err)
			assert.Equal(t, a, b)
		})
	}
}

func TestCodec_Expiry(t *testing.T) {
	for name := range codecs(clockAt(fixedNow)) {
		t.Run(name, func(t *testing.T) {
			issued := codecs(clockAt(fixedNow))[name]
			token, err := issued.Encode(sampleClaims())
			require.NoError(t, err)
			exp := fixedNow.Add(DefaultTokenTTL)

			atExpiry := codecs(clockAt(exp))[name]
			_, err = atExpiry.Decode(token)
			assert.NoError(t, err, "exp equal to now is still valid")

			afterExpiry := codecs(clockAt(exp.Add(time.Millisecond)))[name]
			claims, err := afterExpiry.Decode(token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrTokenExpired)
		})
	}
}

func TestCodec_RejectsGarbage(t *testing.T) {
	for name, codec := range codecs(clockAt(fixedNow)) {
		t.Run(name, func(t *testing.T) {
			for _, token := range []string{"", "not-a-token", "a.b.c", "%%%%", base64.StdEncoding.EncodeToString([]byte("[1,2]"))} {
				claims, err := codec.Decode(token)
				assert.Nil(t, claims, token)
				assert.ErrorIs(t, err, ErrMalformedToken, token)
			}
		})
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("right", WithClock(clockAt(fixedNow))).Encode(sampleClaims())
	require.NoError(t, err)

	_, err = NewTokenManager("wrong", WithClock(clockAt(fixedNow))).Decode(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

// Every single-character change must break the signature. The replacement
// flips the top bit of the base64url sextet, which always carries data.
func TestTokenManager_TamperSensitivity(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	codec := NewTokenManager("test-secret", WithClock(clockAt(fixedNow)))
	token, err := codec.Encode(sampleClaims())
	require.NoError(t, err)

	for i := range token {
		mutated := []byte(token)
		if idx := strings.IndexByte(alphabet, token[i]); idx >= 0 {
			mutated[i] = alphabet[(idx+32)%64]
		} else {
			mutated[i] = 'x'
		}
		claims, err := codec.Decode(string(mutated))
		assert.Error(t, err, "position %d", i)
		assert.Nil(t, claims, "position %d", i)
	}
}

// The legacy format carries no signature: a hand-built payload is accepted.
func TestLegacyCodec_IsForgeable(t *testing.T) {
	codec := NewLegacyCodec(WithClock(clockAt(fixedNow)))
	forged := base64.StdEncoding.EncodeToString([]byte(`{"id":"someone-else","email":"x@y.z","role":"HOSPITAL","exp":99999999999999}`))

	claims, err := codec.Decode(forged)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleHospital, claims.Role)
}

func TestLegacyCodec_WireFormat(t *testing.T) {
	codec := NewLegacyCodec(WithClock(clockAt(fixedNow)))
	token, err := codec.Encode(sampleClaims())
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1f0b0a4-1111-4222-8333-944455556666","email":"jo@x.com","role":"DONOR","exp":1709899200000}`, string(raw))
}

func TestCodec_RejectsUnknownRoleAndMissingID(t *testing.T) {
	codec := NewLegacyCodec(WithClock(clockAt(fixedNow)))
	for _, payload := range []string{
		`{"id":"u1","email":"a@b.c","role":"ADMIN","exp":99999999999999}`,
		`{"email":"a@b.c","role":"DONOR","exp":99999999999999}`,
	} {
		_, err := codec.Decode(base64.StdEncoding.EncodeToString([]byte(payload)))
		assert.ErrorIs(t, err, ErrMalformedToken, payload)
	}

	signed := NewTokenManager("s", WithClock(clockAt(fixedNow)))
	token, err := signed.Encode(Claims{ID: "u1", Role: domain.Role("ADMIN")})
	require.NoError(t, err)
	_, err = signed.Decode(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestNewCodec(t *testing.T) {
	codec, err := NewCodec(config.AuthConfig{TokenScheme: config.TokenSchemeSigned, JWTSecret: "s"})
	require.NoError(t, err)
	assert.IsType(t, &TokenManager{}, codec)

	codec, err = NewCodec(config.AuthConfig{TokenScheme: config.TokenSchemeLegacy, TokenTTLHours: 1}, WithClock(clockAt(fixedNow)))
	require.NoError(t, err)
	assert.IsType(t, &LegacyCodec{}, codec)

	token, err := codec.Encode(sampleClaims())
	require.NoError(t, err)
	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(time.Hour).UnixMilli(), claims.Exp)

	_, err = NewCodec(config.AuthConfig{TokenScheme: "plain"})
	assert.Error(t, err)
}
