package servicea

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// config はService Aの環境変数設定。
type config struct {
	// port はサーバーのリッスンポート。
	port string
	// serviceBURL はService BのベースURL。
	serviceBURL string
	// serviceBTimeout はService B呼び出し1回あたりのタイムアウト。
	serviceBTimeout time.Duration
	// tokenSecret はサービス間認証トークンの署名鍵。空ならトークンを付与しない。
	tokenSecret string
	// allowedOrigins はCORSで許可するオリジン。
	allowedOrigins []string
}

// loadConfig は環境変数から設定を読み込む。
func loadConfig(port string) (config, error) {
	timeout, err := time.ParseDuration(getEnvOr("SERVICE_B_TIMEOUT", "10s"))
	if err != nil {
		return config{}, fmt.Errorf("SERVICE_B_TIMEOUTの形式が不正: %w", err)
	}
	if timeout <= 0 {
		return config{}, fmt.Errorf("SERVICE_B_TIMEOUTは正の値が必要: %s", timeout)
	}

	return config{
		port:            port,
		serviceBURL:     strings.TrimRight(getEnvOr("SERVICE_B_URL", "http://localhost:8081"), "/"),
		serviceBTimeout: timeout,
		tokenSecret:     os.Getenv("SERVICE_TOKEN_SECRET"),
		allowedOrigins:  splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
	}, nil
}

// splitOrigins はカンマ区切りのオリジン一覧を分割する。空要素は除外する。
func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
