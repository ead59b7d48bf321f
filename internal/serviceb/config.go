package serviceb

import "os"

// config はService Bの環境変数設定。
type config struct {
	// port はサーバーのリッスンポート。
	port string
	// tokenSecret はサービス間認証トークンの検証鍵。空なら認証しない。
	tokenSecret string
}

// loadConfig は環境変数から設定を読み込む。
func loadConfig(port string) config {
	return config{
		port:        port,
		tokenSecret: os.Getenv("SERVICE_TOKEN_SECRET"),
	}
}
