package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	notFound := &ErrorWithStatusCode{Message: "post not found", StatusCode: http.StatusNotFound}

	assert.Equal(t, http.StatusNotFound, StatusCode(notFound, http.StatusInternalServerError))
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("edit post: %w", notFound), http.StatusInternalServerError))
	assert.Equal(t, http.StatusBadGateway, StatusCode(fmt.Errorf("plain"), http.StatusBadGateway))
	assert.Equal(t, "post not found", notFound.Error())
}
