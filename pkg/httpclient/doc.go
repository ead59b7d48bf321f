// Package httpclient はサービス間のHTTP通信を行うクライアントを提供する。
//
// Service AがService Bを呼び出す際に使用する。上流のステータスとボディを
// そのまま受け取るFetchと、JSONをデコードするGetJSONを持ち、
// リクエストIDとサービス間認証トークンの伝播を統一する。
package httpclient
