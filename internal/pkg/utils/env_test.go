package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("missing keys fall back to defaults", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnvString("MEDISCAN_TEST_MISSING", "fallback"))
		assert.Equal(t, 7, GetEnvInt("MEDISCAN_TEST_MISSING", 7))
		assert.True(t, GetEnvBool("MEDISCAN_TEST_MISSING", true))
		assert.Equal(t, 3*time.Second, GetEnvDuration("MEDISCAN_TEST_MISSING", 3*time.Second))
	})

	t.Run("values are parsed into the default type", func(t *testing.T) {
		t.Setenv("MEDISCAN_TEST_INT", "42")
		t.Setenv("MEDISCAN_TEST_INT64", "9000000000")
		t.Setenv("MEDISCAN_TEST_BOOL", "true")
		t.Setenv("MEDISCAN_TEST_DURATION", "250ms")

		assert.Equal(t, 42, GetEnvInt("MEDISCAN_TEST_INT", 0))
		assert.Equal(t, int64(9000000000), GetEnvInt64("MEDISCAN_TEST_INT64", 0))
		assert.True(t, GetEnvBool("MEDISCAN_TEST_BOOL", false))
		assert.Equal(t, 250*time.Millisecond, GetEnvDuration("MEDISCAN_TEST_DURATION", time.Second))
	})

	t.Run("unparsable values fall back to defaults", func(t *testing.T) {
		t.Setenv("MEDISCAN_TEST_BAD_INT", "forty-two")
		t.Setenv("MEDISCAN_TEST_BAD_DURATION", "soon")

		assert.Equal(t, 5, GetEnvInt("MEDISCAN_TEST_BAD_INT", 5))
		assert.Equal(t, time.Minute, GetEnvDuration("MEDISCAN_TEST_BAD_DURATION", time.Minute))
	})
}
