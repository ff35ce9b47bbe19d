package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreference_Bool(t *testing.T) {
	for _, v := range []string{"1", "true", "yes"} {
		assert.True(t, (&Preference{Value: v}).Bool(), v)
	}
	for _, v := range []string{"", "0", "false", "no", "TRUE "} {
		assert.False(t, (&Preference{Value: v}).Bool(), v)
	}
}

func TestDiscoveryRecord_DisplayName(t *testing.T) {
	assert.Equal(t, "(anonymous)", (&DiscoveryRecord{}).DisplayName())
	assert.Equal(t, "Dana", (&DiscoveryRecord{Name: "Dana"}).DisplayName())
}
