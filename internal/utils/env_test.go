package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yungbote/hookupmap/internal/pkg/logger"
)

func TestGetEnv(t *testing.T) {
	log := logger.Nop()

	t.Setenv("HOOKUP_TEST_STR", "maps")
	assert.Equal(t, "maps", GetEnv("HOOKUP_TEST_STR", "x", log))
	assert.Equal(t, "x", GetEnv("HOOKUP_TEST_UNSET", "x", nil))

	t.Setenv("HOOKUP_TEST_INT", " 42 ")
	assert.Equal(t, 42, GetEnvAsInt("HOOKUP_TEST_INT", 7, log))
	t.Setenv("HOOKUP_TEST_INT", "forty")
	assert.Equal(t, 7, GetEnvAsInt("HOOKUP_TEST_INT", 7, log))

	t.Setenv("HOOKUP_TEST_BOOL", "true")
	assert.True(t, GetEnvAsBool("HOOKUP_TEST_BOOL", false, log))
	t.Setenv("HOOKUP_TEST_BOOL", "maybe")
	assert.False(t, GetEnvAsBool("HOOKUP_TEST_BOOL", false, log))
}
