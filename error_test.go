package huaci_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/huaci"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := huaci.Errorf(huaci.EMISSINGKEY, "toml key %q does not exist", "deck-name")

	assert.Equal(t, huaci.EMISSINGKEY, huaci.ErrorCode(err))
	assert.Equal(t, "toml key \"deck-name\" does not exist", huaci.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, huaci.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, huaci.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("read config: %w", huaci.Errorf(huaci.EIO, "config.toml does not exist"))

	assert.Equal(t, huaci.EIO, huaci.ErrorCode(err))
	assert.Equal(t, "config.toml does not exist", huaci.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, huaci.EINTERNAL, huaci.ErrorCode(err))
	assert.Equal(t, "Internal error.", huaci.ErrorMessage(err))
}

func TestIsSchemaError(t *testing.T) {
	t.Parallel()

	assert.True(t, huaci.IsSchemaError(huaci.Errorf(huaci.EMISSINGKEY, "missing")))
	assert.True(t, huaci.IsSchemaError(huaci.Errorf(huaci.EKEYTYPE, "wrong type")))
	assert.False(t, huaci.IsSchemaError(huaci.Errorf(huaci.EIO, "unreadable")))
	assert.False(t, huaci.IsSchemaError(nil))
}
