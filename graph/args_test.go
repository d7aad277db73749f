package graph

import (
	"testing"

	"hotel/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDArg(t *testing.T) {
	id, err := idArg(map[string]interface{}{"id": "42"}, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	for _, bad := range []interface{}{"abc", "-1", "0", "1.5", nil} {
		_, err := idArg(map[string]interface{}{"id": bad}, "id")
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidID), "%v", bad)
	}
	_, err = idArg(map[string]interface{}{}, "id")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidID))
}

func TestOptionalArgs(t *testing.T) {
	args := map[string]interface{}{"type": "SUITE", "price": 12.5, "count": 3}
	require.NotNil(t, optionalString(args, "type"))
	assert.Equal(t, "SUITE", *optionalString(args, "type"))
	assert.Nil(t, optionalString(args, "missing"))
	assert.Equal(t, 12.5, *optionalFloat(args, "price"))
	assert.Equal(t, 3.0, *optionalFloat(args, "count"))
	assert.Nil(t, optionalFloat(args, "missing"))
}
