package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidToken 令牌格式不正确
var ErrInvalidToken = errors.New("无效的管理员令牌")

// Credentials 管理员凭据
type Credentials struct {
	Username string
	Password string
}

// EncodeAdminToken 生成 base64(username:password) 形式的令牌
func EncodeAdminToken(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// DecodeAdminToken 解析令牌，用户名中不允许出现冒号
func DecodeAdminToken(token string) (Credentials, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return Credentials{}, ErrInvalidToken
	}
	username, password, ok := strings.Cut(string(raw), ":")
	if !ok || username == "" {
		return Credentials{}, ErrInvalidToken
	}
	return Credentials{Username: username, Password: password}, nil
}

// Match 常量时间比较凭据，配置的密码为空时总是失败
func (c Credentials) Match(expected Credentials) bool {
	if expected.Username == "" || expected.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(expected.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(expected.Password)) == 1
	return userOK && passOK
}

// VerifyAdminToken 校验令牌是否与期望凭据一致
func VerifyAdminToken(token string, expected Credentials) (string, bool) {
	creds, err := DecodeAdminToken(token)
	if err != nil {
		return "", false
	}
	if !creds.Match(expected) {
		return "", false
	}
	return creds.Username, true
}
