package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token := EncodeAdminToken("admin", "p:ss")
	assert.Equal(t, "YWRtaW46cDpzcw==", token)

	creds, err := DecodeAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, Credentials{Username: "admin", Password: "p:ss"}, creds)
}

func TestDecodeAdminTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "%%%", "bm9jb2xvbg==", "OnBhc3M="} {
		_, err := DecodeAdminToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestVerifyAdminToken(t *testing.T) {
	expected := Credentials{Username: "admin", Password: "secret"}

	name, ok := VerifyAdminToken(EncodeAdminToken("admin", "secret"), expected)
	assert.True(t, ok)
	assert.Equal(t, "admin", name)

	_, ok = VerifyAdminToken(EncodeAdminToken("admin", "wrong"), expected)
	assert.False(t, ok)

	// 未配置密码时任何令牌都无效
	_, ok = VerifyAdminToken(EncodeAdminToken("admin", ""), Credentials{Username: "admin"})
	assert.False(t, ok)
}
