package dto

// AddCommentReq はPOST /movies/:id/commentsエンドポイントのリクエストボディを表します。
type AddCommentReq struct {
	Comment string `json:"comment" binding:"required"`
}
