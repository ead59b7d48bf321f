// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// パニックリカバリ、リクエストIDの採番と伝播、CORS設定、
// サービス間認証トークンの発行と検証を含む。
package middleware
