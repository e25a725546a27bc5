// Package api はエンドポイント間で共有されるレスポンスエンベロープを定義します。
package api

// MessageResponse は成功時のメッセージのみのレスポンスボディです。
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse はハンドラーレベルの失敗時のレスポンスボディです。
// Detailsはバリデーション失敗の内訳など、補足情報がある場合のみ設定されます。
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ErrorDetail は集約エラーハンドラーが返すエラー本体です。
type ErrorDetail struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
	Details   any    `json:"details"`
}

// ErrorEnvelope は未分類のサーバーエラー（500）の統一レスポンスボディです。
type ErrorEnvelope struct {
	Error ErrorDetail `json:"error"`
}
