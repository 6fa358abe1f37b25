package home

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler{Service: "duo-blog", Version: "test"}.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "duo-blog", got.Service)
	assert.Equal(t, "test", got.Version)
	assert.Equal(t, "/articles", got.Links["articles"])
}
