package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistered(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	paths := parsed["paths"].(map[string]interface{})
	assert.Contains(t, paths, "/api/v1/trips/plan")
	assert.Contains(t, paths, "/api/v2/travel_patterns")
	assert.Equal(t, "Trip Planner API", parsed["info"].(map[string]interface{})["title"])
}
