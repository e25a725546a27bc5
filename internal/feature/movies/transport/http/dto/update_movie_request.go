package dto

// UpdateMovieReq はPATCH /movies/:idエンドポイントのリクエストボディを表します。
// ポインタで「未指定」と「空文字」を区別し、未指定のフィールドは更新対象外とします。
type UpdateMovieReq struct {
	Title       *string `json:"title"`
	Director    *string `json:"director"`
	Year        *int    `json:"year"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
}
