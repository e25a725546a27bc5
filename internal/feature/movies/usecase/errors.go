package usecase

import "errors"

var (
	// ErrMovieNotFound indicates that no movie exists for a well-formed identifier.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrNoFieldsToUpdate indicates a partial update request with no updatable field present.
	// 空ペイロードの更新は暗黙の成功にせず常にエラーにします。
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")

	// ErrValidation indicates malformed or missing input. The wrapping error
	// carries the field-level detail.
	ErrValidation = errors.New("validation error")
)
