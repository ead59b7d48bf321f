package servicea

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/servicecall/pkg/httpclient"
	"github.com/nao1215/servicecall/pkg/middleware"
)

const (
	// ServiceName はサービス間認証で使うService Aの名前。
	ServiceName = "service-a"
	// serviceBName はService Bの名前。トークンのaudienceに使う。
	serviceBName = "service-b"
	// serviceBRoute はService Bの呼び出し先パス。
	serviceBRoute = "/serviceB/"
	// serviceBHealthRoute はService Bのヘルスチェックパス。
	serviceBHealthRoute = "/health"
	// serviceTokenTTL はService Bへ送るトークンの有効期間。
	serviceTokenTTL = 5 * time.Minute
	// readyTimeout はレディネスチェック1回あたりのタイムアウト。
	readyTimeout = 3 * time.Second
)

// upstream はService Bとの通信に必要な操作。
type upstream interface {
	Fetcher
	GetJSON(ctx context.Context, path string, result any) error
}

// Server はService AのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// cfg は起動時に読み込んだ設定。
	cfg config
	// serviceB はService Bへの通信クライアント。
	serviceB upstream
}

// NewServer は新しいService Aサーバーを生成する。
// Service Bへの接続先とタイムアウトは環境変数から読み込む。
func NewServer(port string) (*Server, error) {
	cfg, err := loadConfig(port)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}
	return newServer(cfg, newServiceBClient(cfg)), nil
}

// newServiceBClient はService B向けのHTTPクライアントを生成する。
func newServiceBClient(cfg config) *httpclient.Client {
	opts := []httpclient.Option{httpclient.WithTimeout(cfg.serviceBTimeout)}
	if cfg.tokenSecret != "" {
		opts = append(opts, httpclient.WithTokenSource(func() (string, error) {
			return middleware.GenerateServiceToken(cfg.tokenSecret, ServiceName, serviceBName, serviceTokenTTL)
		}))
	}
	return httpclient.New(cfg.serviceBURL, opts...)
}

// newServer は設定と上流クライアントからサーバーを組み立てる。
func newServer(cfg config, serviceB upstream) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.allowedOrigins))

	s := &Server{
		router:   router,
		cfg:      cfg,
		serviceB: serviceB,
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	log.Printf("Service Bの接続先: %s (timeout=%s)", s.cfg.serviceBURL, s.cfg.serviceBTimeout)
	return s.router.Run(fmt.Sprintf(":%s", s.cfg.port))
}

// Handler はルーティング済みのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	relay := NewRelay(s.serviceB, serviceBRoute)
	s.router.GET("/callServiceB", relay.Handle)

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
	})
	s.router.GET("/ready", s.handleReady())
}

// handleReady はService Bのヘルスチェック結果を返すハンドラを返す。
func (s *Server) handleReady() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		ctx = httpclient.WithRequestID(ctx, middleware.GetRequestID(c))

		var health struct {
			Status string `json:"status"`
		}
		if err := s.serviceB.GetJSON(ctx, serviceBHealthRoute, &health); err != nil {
			log.Printf("Service Bのヘルスチェックに失敗: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "Service Bに接続できません"})
			return
		}
		if health.Status != "ok" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": fmt.Sprintf("Service Bの状態が異常です: %s", health.Status)})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
