package fdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigApplyDefaultsFillsOnlyZeroFields(t *testing.T) {
	cfg := Config{N: 10, E: 0, SortSpanSize: 4}
	applied := cfg.applyDefaults()

	assert.Equal(t, 4, applied.SortSpanSize, "explicit value must not be overwritten")
	assert.Equal(t, 128, applied.EdgeCoarseMapStride, "zero value must take the documented default")
	assert.NotNil(t, applied.Logger)
}

func TestConfigValidateRejectsBadSortSpanSize(t *testing.T) {
	cfg := DefaultConfig(4, 0)
	cfg.SortSpanSize = 6
	err := cfg.validate(5, 0)
	assert.Error(t, err)
}

func TestConfigValidateAcceptsDefaults(t *testing.T) {
	cfg := DefaultConfig(4, 2)
	err := cfg.validate(5, 2)
	assert.NoError(t, err)
}
