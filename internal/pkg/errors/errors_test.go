package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithDetailsKeepsSentinel(t *testing.T) {
	err := ErrInvalidTravelPattern.WithDetails(map[string]interface{}{"field": "name"})

	assert.Equal(t, "name", err.Details["field"])
	assert.Empty(t, ErrInvalidTravelPattern.Details)
	assert.True(t, stderrors.Is(err, ErrInvalidTravelPattern))
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("plan trip: %w", ErrNoItineraries)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "NO_ITINERARIES", appErr.Code)

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}
