package api

import "github.com/itchan-dev/postadmin/shared/domain"

// Request and response DTOs of the remote posts API

type EditPostRequest struct {
	Description string `json:"discription" validate:"notblank"`
}

type PostListResponse struct {
	Posts domain.Posts `json:"posts" validate:"dive"`
}

type EditPostResponse struct {
	Message string       `json:"message,omitempty"`
	Post    *domain.Post `json:"post,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

// ErrorResponse covers both error envelopes the API is known to send.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
