// Service Bのエントリポイント。
// GET /serviceB/ に固定の挨拶文を返す。
package main

import (
	"log"
	"os"

	"github.com/nao1215/servicecall/internal/serviceb"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	server, err := serviceb.NewServer(port)
	if err != nil {
		log.Fatalf("Service Bサーバーの初期化に失敗: %v", err)
	}

	log.Printf("Service Bを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("Service Bの起動に失敗: %v", err)
	}
}
