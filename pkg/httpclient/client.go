package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// maxBodySize は読み取るレスポンスボディの上限（1MiB）。
const maxBodySize = 1 << 20

// ErrBodyTooLarge はレスポンスボディが上限を超えたことを表す。
// 切り詰めたボディは返さない。
var ErrBodyTooLarge = errors.New("レスポンスボディが上限(1MiB)を超えています")

// Client はサービス間通信用のHTTPクライアント。
// タイムアウトと認証トークンの設定を持つ。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先サービスのベースURL。
	baseURL string
	// tokenSource は送信ごとにBearerトークンを返す関数。nilなら付与しない。
	tokenSource func() (string, error)
}

// Option はClientの設定を変更する関数。
type Option func(*Client)

// WithTimeout はリクエスト全体のタイムアウトを設定する。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTokenSource は送信ごとにAuthorizationヘッダーへ付与するトークンの取得元を設定する。
func WithTokenSource(fn func() (string, error)) Option {
	return func(c *Client) {
		c.tokenSource = fn
	}
}

// New は新しいサービス間通信用HTTPクライアントを生成する。
// baseURLには接続先サービスのベースURL（例: "http://service-b:8081"）を指定する。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response は上流サービスから受け取ったレスポンス。
type Response struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ。
	Body []byte
	// ContentType はレスポンスのContent-Typeヘッダー。
	ContentType string
}

// IsSuccess はステータスコードが2xxかどうかを返す。
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// TransportError はリクエストが上流に届かなかった、または応答を受け取れなかったことを表す。
type TransportError struct {
	// URL は送信先URL。
	URL string
	// Err は原因となったエラー。
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTPリクエストの送信に失敗: url=%s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout はタイムアウトが原因かどうかを返す。
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// StatusError は上流が2xx以外のステータスを返したことを表す。
type StatusError struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ。
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTPエラー: status=%d, body=%s", e.StatusCode, e.Body)
}

// Fetch は指定パスにGETリクエストを送信し、ステータスとボディをそのまま返す。
// 2xx以外のステータスはエラーにしない。通信自体に失敗した場合や
// ボディが上限を超えた場合は*TransportErrorを返す。
func (c *Client) Fetch(ctx context.Context, path string) (*Response, error) {
	resp, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &TransportError{URL: c.baseURL + path, Err: fmt.Errorf("レスポンスボディの読み取りに失敗: %w", err)}
	}
	if len(body) > maxBodySize {
		return nil, &TransportError{URL: c.baseURL + path, Err: ErrBodyTooLarge}
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// GetJSON は指定パスにGETリクエストを送信する。
// レスポンスボディをresultにデシリアライズする。2xx以外は*StatusErrorを返す。
func (c *Client) GetJSON(ctx context.Context, path string, result any) error {
	resp, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil {
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(result); err != nil {
			return fmt.Errorf("レスポンスボディのデシリアライズに失敗: %w", err)
		}
	}
	return nil
}

// do はリクエストの組み立てと送信を行う共通処理。
func (c *Client) do(ctx context.Context, method, path string) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}

	// コンテキストからリクエストIDを伝播する
	if requestID, ok := ctx.Value(contextKeyRequestID).(string); ok && requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	if c.tokenSource != nil {
		token, err := c.tokenSource()
		if err != nil {
			return nil, fmt.Errorf("認証トークンの取得に失敗: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return resp, nil
}

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyRequestID はコンテキストにリクエストIDを格納するためのキー。
const contextKeyRequestID contextKey = "request_id"

// WithRequestID はコンテキストにリクエストIDを設定する。
// サービス間通信時にリクエストIDを伝播するために使用する。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}
