// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /users/register endpoint.
// It uses Gin's binding tags for the presence/shape checks; the usecase
// re-validates the field contracts before hashing or storage.
type RegisterReq struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	MobileNo  string `json:"mobileNo" binding:"omitempty,numeric,min=10,max=15"`
}
