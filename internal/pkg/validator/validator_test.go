package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name string `validate:"required"`
	Age  int    `validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sample{Name: "ok"}))

	err := Validate(sample{Age: -1})
	assert.Error(t, err)

	messages := Messages(err)
	assert.ElementsMatch(t, []string{"sample.Name: required", "sample.Age: gte"}, messages)
}
