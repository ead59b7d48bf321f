package servicea

import (
	"slices"
	"testing"
	"time"
)

// TestLoadConfig は環境変数からの設定読み込みを検証する。
// t.Setenvを使うため並列実行しない。
func TestLoadConfig(t *testing.T) {
	t.Run("未設定の場合はデフォルト値を使う", func(t *testing.T) {
		t.Setenv("SERVICE_B_URL", "")
		t.Setenv("SERVICE_B_TIMEOUT", "")
		t.Setenv("SERVICE_TOKEN_SECRET", "")
		t.Setenv("ALLOWED_ORIGINS", "")

		cfg, err := loadConfig("8080")
		if err != nil {
			t.Fatalf("loadConfig()でエラーが発生: %v", err)
		}
		if cfg.port != "8080" {
			t.Errorf("port = %q, want %q", cfg.port, "8080")
		}
		if cfg.serviceBURL != "http://localhost:8081" {
			t.Errorf("serviceBURL = %q, want %q", cfg.serviceBURL, "http://localhost:8081")
		}
		if cfg.serviceBTimeout != 10*time.Second {
			t.Errorf("serviceBTimeout = %v, want 10s", cfg.serviceBTimeout)
		}
		if cfg.tokenSecret != "" {
			t.Errorf("tokenSecret = %q, want empty", cfg.tokenSecret)
		}
		if len(cfg.allowedOrigins) != 0 {
			t.Errorf("allowedOrigins = %v, want empty", cfg.allowedOrigins)
		}
	})

	t.Run("環境変数の値を読み込む", func(t *testing.T) {
		t.Setenv("SERVICE_B_URL", "http://service-b:8081/")
		t.Setenv("SERVICE_B_TIMEOUT", "2500ms")
		t.Setenv("SERVICE_TOKEN_SECRET", "secret")
		t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, ,https://example.com")

		cfg, err := loadConfig("9000")
		if err != nil {
			t.Fatalf("loadConfig()でエラーが発生: %v", err)
		}
		if cfg.serviceBURL != "http://service-b:8081" {
			t.Errorf("serviceBURL = %q, want %q", cfg.serviceBURL, "http://service-b:8081")
		}
		if cfg.serviceBTimeout != 2500*time.Millisecond {
			t.Errorf("serviceBTimeout = %v, want 2.5s", cfg.serviceBTimeout)
		}
		if cfg.tokenSecret != "secret" {
			t.Errorf("tokenSecret = %q, want %q", cfg.tokenSecret, "secret")
		}
		want := []string{"http://localhost:3000", "https://example.com"}
		if !slices.Equal(cfg.allowedOrigins, want) {
			t.Errorf("allowedOrigins = %v, want %v", cfg.allowedOrigins, want)
		}
	})

	t.Run("不正なタイムアウトはエラーになる", func(t *testing.T) {
		for _, v := range []string{"ten seconds", "0s", "-1s"} {
			t.Setenv("SERVICE_B_TIMEOUT", v)
			if _, err := loadConfig("8080"); err == nil {
				t.Errorf("SERVICE_B_TIMEOUT=%q でエラーにならなかった", v)
			}
		}
	})

	t.Run("NewServerは不正な設定でエラーを返す", func(t *testing.T) {
		t.Setenv("SERVICE_B_TIMEOUT", "invalid")
		if _, err := NewServer("8080"); err == nil {
			t.Error("NewServer()がエラーを返すべきだが、nilが返った")
		}
	})
}
