package api

import "google.golang.org/protobuf/types/known/timestamppb"

type User struct {
	Id          string                 `json:"id"`
	Email       string                 `json:"email"`
	DisplayName string                 `json:"displayName"`
	CreatedAt   *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
