package handling

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	logger := gecho.NewDefaultLogger()
	cause := errors.New("session store unreachable")

	w := httptest.NewRecorder()
	err := HandleError(cause, "Failed to establish session", logger, w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.ErrorIs(t, err, cause)
}
