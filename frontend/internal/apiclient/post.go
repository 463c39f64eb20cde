package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/itchan-dev/postadmin/shared/api"
	"github.com/itchan-dev/postadmin/shared/domain"
	internal_errors "github.com/itchan-dev/postadmin/shared/errors"
	"github.com/itchan-dev/postadmin/shared/utils"
)

func postPath(id domain.PostId) string {
	return "/posts/" + url.PathEscape(string(id))
}

// GetPosts fetches every post. The API answers either with an envelope
// {"posts": [...]} or with a bare array.
func (c *APIClient) GetPosts(ctx context.Context) (domain.Posts, error) {
	resp, err := c.do(ctx, http.MethodGet, "/posts", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backendError(resp, "get posts")
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var response api.PostListResponse
	if trimmed := bytes.TrimSpace(bodyBytes); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &response.Posts); err != nil {
			return nil, fmt.Errorf("cannot decode posts response: %w", err)
		}
		if err := utils.Validator().Struct(response); err != nil {
			return nil, fmt.Errorf("invalid posts response: %w", err)
		}
	} else if err := utils.DecodeValidate(bytes.NewReader(bodyBytes), &response); err != nil {
		return nil, fmt.Errorf("cannot decode posts response: %w", err)
	}

	if response.Posts == nil {
		response.Posts = domain.Posts{}
	}
	return response.Posts, nil
}

// EditPost updates a post's description and returns the API's confirmation message.
func (c *APIClient) EditPost(ctx context.Context, id domain.PostId, data api.EditPostRequest) (api.EditPostResponse, error) {
	var response api.EditPostResponse
	if id == "" {
		return response, &internal_errors.ErrorWithStatusCode{Message: "post id is required", StatusCode: http.StatusBadRequest}
	}

	if err := utils.Validator().Struct(data); err != nil {
		return response, &internal_errors.ErrorWithStatusCode{Message: "description is required", StatusCode: http.StatusBadRequest}
	}

	jsonBody, err := json.Marshal(data)
	if err != nil {
		return response, fmt.Errorf("failed to marshal post data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPut, postPath(id), bytes.NewReader(jsonBody))
	if err != nil {
		return response, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return response, backendError(resp, "edit post")
	}
	if resp.StatusCode == http.StatusNoContent {
		return response, nil
	}

	// the confirmation body is informational; an unreadable one is not a failure,
	// but a half-decoded post must never reach the caller
	var decoded api.EditPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return api.EditPostResponse{Message: decoded.Message}, nil
	}
	return decoded, nil
}

// DeletePost deletes a post and returns the API's confirmation message.
func (c *APIClient) DeletePost(ctx context.Context, id domain.PostId) (string, error) {
	if id == "" {
		return "", &internal_errors.ErrorWithStatusCode{Message: "post id is required", StatusCode: http.StatusBadRequest}
	}

	resp, err := c.do(ctx, http.MethodDelete, postPath(id), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", backendError(resp, "delete post")
	}
	if resp.StatusCode == http.StatusNoContent {
		return "", nil
	}

	var response api.MessageResponse
	_ = json.NewDecoder(resp.Body).Decode(&response)
	return response.Message, nil
}
