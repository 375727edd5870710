package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleInput struct {
	Message string `validate:"no_xss"`
	Phone   string `validate:"omitempty,phone_loose"`
}

func TestInitValidator(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Struct(sampleInput{Message: "Giảm 20% cuối tuần", Phone: "+56 9 1234 5678"}))
	assert.Error(t, Validate.Struct(sampleInput{Message: "<script>alert(1)</script>"}))
	assert.Error(t, Validate.Struct(sampleInput{Message: "ok", Phone: "abc"}))
	assert.NoError(t, Validate.Struct(sampleInput{Message: "ok"}))
}
