package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError_NoDocumentsBecomesNotFound(t *testing.T) {
	err := ConvertMongoError(fmt.Errorf("find: %w", mongo.ErrNoDocuments))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestConvertMongoError_KeepsAppErrors(t *testing.T) {
	assert.Equal(t, ErrValidation, ConvertMongoError(ErrValidation))
	assert.Nil(t, ConvertMongoError(nil))
}

func TestConvertMongoError_WrapsUnknown(t *testing.T) {
	raw := errors.New("boom")
	err := ConvertMongoError(raw)

	var appErr *Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrCodeDatabase.Code, appErr.Code.Code)
	assert.True(t, errors.Is(err, raw), "lỗi gốc phải unwrap được")
}

func TestError_IsComparesCodeAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", ErrSendFailed)
	assert.True(t, errors.Is(wrapped, ErrSendFailed))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}
