// Service Aのエントリポイント。
// GET /callServiceB でService Bを呼び出し、その応答を中継する。
// Service Bの接続先は環境変数 SERVICE_B_URL で指定する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/servicecall/internal/servicea"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server, err := servicea.NewServer(port)
	if err != nil {
		log.Fatalf("Service Aサーバーの初期化に失敗: %v", err)
	}

	log.Printf("Service Aを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("Service Aの起動に失敗: %v", err)
	}
}
