package servicea

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/servicecall/pkg/httpclient"
	"github.com/nao1215/servicecall/pkg/middleware"
)

const (
	// MessageUpstreamError は上流が2xx以外を返した場合の本文。
	MessageUpstreamError = "Error while calling service B"
	// MessageUnreachable は上流に到達できなかった場合の本文。
	MessageUnreachable = "Service B is unreachable"
	// MessageTimeout は上流の応答がタイムアウトした場合の本文。
	MessageTimeout = "Timed out while calling service B"
	// MessageBodyTooLarge は上流の本文が上限を超えた場合の本文。
	MessageBodyTooLarge = "Response from service B is too large"
)

// defaultContentType は上流がContent-Typeを返さなかった場合に使う値。
const defaultContentType = "text/plain; charset=utf-8"

// Fetcher は上流サービスのルートをGETし、ステータスとボディを返す。
// *httpclient.Client が実装する。
type Fetcher interface {
	Fetch(ctx context.Context, route string) (*httpclient.Response, error)
}

// Relay は上流サービスの応答を中継するハンドラ。
type Relay struct {
	// fetcher は上流サービスの呼び出しに使う。
	fetcher Fetcher
	// route は上流サービスの呼び出し先パス。
	route string
}

// NewRelay は新しいRelayを生成する。
func NewRelay(fetcher Fetcher, route string) *Relay {
	return &Relay{
		fetcher: fetcher,
		route:   route,
	}
}

// Handle は上流を呼び出して結果を中継するGinハンドラ。
func (r *Relay) Handle(c *gin.Context) {
	requestID := middleware.GetRequestID(c)
	ctx := httpclient.WithRequestID(c.Request.Context(), requestID)

	resp, err := r.fetcher.Fetch(ctx, r.route)
	if err != nil {
		status, message := classifyFetchError(err)
		log.Printf("上流呼び出しに失敗: route=%s, request_id=%s, status=%d, error=%v", r.route, requestID, status, err)
		c.String(status, message)
		return
	}

	if resp == nil {
		log.Printf("上流呼び出しが空の応答を返却: route=%s, request_id=%s", r.route, requestID)
		c.String(http.StatusBadGateway, MessageUnreachable)
		return
	}

	if !resp.IsSuccess() {
		log.Printf("上流がエラーを返却: route=%s, request_id=%s, status=%d", r.route, requestID, resp.StatusCode)
		c.String(resp.StatusCode, MessageUpstreamError)
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	c.Data(http.StatusOK, contentType, resp.Body)
}

// classifyFetchError は通信エラーを返却するステータスと本文に変換する。
func classifyFetchError(err error) (int, string) {
	if errors.Is(err, httpclient.ErrBodyTooLarge) {
		return http.StatusBadGateway, MessageBodyTooLarge
	}
	var transportErr *httpclient.TransportError
	if errors.As(err, &transportErr) && transportErr.Timeout() {
		return http.StatusGatewayTimeout, MessageTimeout
	}
	return http.StatusBadGateway, MessageUnreachable
}
