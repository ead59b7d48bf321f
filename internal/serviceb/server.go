package serviceb

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/servicecall/pkg/middleware"
)

// Greeting は GET /serviceB/ が返す固定の本文。
const Greeting = "Hello from service B"

// ServiceName はサービス間認証で使うService Bの名前。
const ServiceName = "service-b"

// Server はService BのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// cfg は起動時に読み込んだ設定。
	cfg config
}

// NewServer は新しいService Bサーバーを生成する。
func NewServer(port string) (*Server, error) {
	return newServer(loadConfig(port)), nil
}

// newServer は設定からサーバーを組み立てる。
func newServer(cfg config) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router: router,
		cfg:    cfg,
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.cfg.port))
}

// Handler はルーティング済みのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	greet := s.router.Group("/serviceB")
	if s.cfg.tokenSecret != "" {
		greet.Use(middleware.ServiceAuth(s.cfg.tokenSecret, ServiceName))
	}
	greet.GET("/", s.handleGreeting())

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
	})
}

// handleGreeting は固定の挨拶文を返すハンドラを返す。
func (s *Server) handleGreeting() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, Greeting)
	}
}
