// Package dto defines data transfer objects for the movies feature's HTTP transport layer.
package dto

// CreateMovieReq represents the request body for POST /movies.
// All fields are required; the usecase re-validates lengths and the year range.
type CreateMovieReq struct {
	Title       string `json:"title" binding:"required"`
	Director    string `json:"director" binding:"required"`
	Year        int    `json:"year" binding:"required"`
	Description string `json:"description" binding:"required"`
	Genre       string `json:"genre" binding:"required"`
}
