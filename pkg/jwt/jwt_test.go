package jwt

import (
	"testing"
	"time"

	"github.com/satyaprakashdhfm/studentmanagement-app-sub001/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-at-least-16-chars",
		AccessTokenTTL: ttl,
	})
}

func TestManager_GenerateAndParse(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)

	token, err := mgr.GenerateAccessToken("u-001", "teacher", "rajeshmaths080910", 0)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != "u-001" {
		t.Errorf("期望 UserID=u-001，实际=%s", claims.UserID)
	}
	if claims.Role != "teacher" {
		t.Errorf("期望 Role=teacher，实际=%s", claims.Role)
	}
	if claims.TeacherID != "rajeshmaths080910" {
		t.Errorf("期望 TeacherID=rajeshmaths080910，实际=%s", claims.TeacherID)
	}
	if claims.ID == "" {
		t.Error("期望 jti 非空")
	}
}

func TestManager_ParseExpired(t *testing.T) {
	mgr := newTestManager(-1 * time.Minute)

	token, err := mgr.GenerateAccessToken("u-001", "admin", "", 0)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := mgr.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestManager_ParseTampered(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-16-chars-min",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, err := other.GenerateAccessToken("u-001", "admin", "", 0)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := mgr.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
