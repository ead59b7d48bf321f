// Package servicea はService A（中継側サービス）の内部実装を提供する。
//
// GET /callServiceB でService Bを呼び出し、2xxなら本文をそのまま200で返し、
// それ以外は上流のステータスに固定のエラーメッセージを付けて返す。
// 上流に到達できない場合は502、タイムアウトした場合は504を返す。
package servicea
