package dto

// UpdatePasswordReq は/users/update-passwordエンドポイントのリクエストボディを表します。
type UpdatePasswordReq struct {
	NewPassword string `json:"newPassword" binding:"required"`
}
