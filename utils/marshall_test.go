package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type animal struct {
	Type string `json:"type"`
	Legs int    `json:"legs"`
}

var animalTypes = map[string]func() interface{}{
	"spider": func() interface{} { return &animal{} },
}

func TestTypeBasedUnmarshallJSON(t *testing.T) {
	value, err := TypeBasedUnmarshallJSON([]byte(`{"type": "spider", "legs": 8}`), animalTypes)
	require.NoError(t, err)
	assert.Equal(t, animal{Type: "spider", Legs: 8}, value)
}

func TestTypeBasedUnmarshallJSONErrors(t *testing.T) {
	_, err := TypeBasedUnmarshallJSON([]byte(`{"type": "crab"}`), animalTypes)
	assert.ErrorContains(t, err, "unknown type")

	_, err = TypeBasedUnmarshallJSON([]byte(`not json`), animalTypes)
	assert.Error(t, err)
}
