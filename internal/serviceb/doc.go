// Package serviceb はService B（応答側サービス）の内部実装を提供する。
//
// GET /serviceB/ に固定の挨拶文を返すだけの末端サービスで、入力を読まず
// 副作用も持たない。SERVICE_TOKEN_SECRETが設定されている場合のみ
// サービス間認証トークンを要求する。
package serviceb
