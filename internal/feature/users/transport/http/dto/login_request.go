package dto

// LoginReq は/users/loginエンドポイントのリクエストボディを表します。
// 必須フィールドのバリデーションを含みます。
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
