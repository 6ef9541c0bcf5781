package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Parallel()

	require.NoError(t, Register(&Option{
		Name:            "Monkey",
		Key:             "test/get_monkey",
		Description:     "string option",
		OptType:         OptTypeString,
		DefaultValue:    "0",
		ValidationRegex: "^[0-9]$",
	}))
	require.NoError(t, Register(&Option{
		Name:         "Elephant",
		Key:          "test/get_elephant",
		Description:  "int option",
		OptType:      OptTypeInt,
		DefaultValue: 0,
	}))
	require.NoError(t, Register(&Option{
		Name:        "Hot",
		Key:         "test/get_hot",
		Description: "bool option without default",
		OptType:     OptTypeBool,
	}))

	monkey := GetAsString("test/get_monkey", "none")
	elephant := GetAsInt("test/get_elephant", -1)
	hot := GetAsBool("test/get_hot", false)
	unknown := GetAsString("test/get_snake", "fallback")

	assert.Equal(t, "0", monkey())
	assert.Equal(t, int64(0), elephant())
	assert.False(t, hot())
	assert.Equal(t, "fallback", unknown())

	require.NoError(t, SetConfigOption("test/get_monkey", "1"))
	require.NoError(t, SetConfigOption("test/get_elephant", 2))
	require.NoError(t, SetConfigOption("test/get_hot", true))

	assert.Equal(t, "1", monkey())
	assert.Equal(t, int64(2), elephant())
	assert.True(t, hot())

	// invalid values keep the previous value
	assert.Error(t, SetConfigOption("test/get_monkey", "10"))
	assert.Error(t, SetConfigOption("test/get_elephant", "2"))
	assert.Error(t, SetConfigOption("test/get_elephant", 2.5))
	assert.Error(t, SetConfigOption("test/get_elephant", uint8(2)), "only int and int64 are accepted")
	assert.Error(t, SetConfigOption("test/get_hot", "true"))
	assert.Equal(t, "1", monkey())
	assert.Equal(t, int64(2), elephant())

	// wrong getter type falls back
	assert.Equal(t, int64(-7), GetAsInt("test/get_monkey", -7)())

	v, err := GetActiveValue("test/get_elephant")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	require.NoError(t, ResetConfigOption("test/get_monkey"))
	assert.Equal(t, "0", monkey())

	assert.ErrorIs(t, SetConfigOption("test/get_snake", "1"), ErrUnknownOption)
}
