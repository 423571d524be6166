package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeE164(t *testing.T) {
	assert.Equal(t, "+919876543210", NormalizeE164("9876543210"))
	assert.Equal(t, "+919876543210", NormalizeE164(" +91 98765 43210 "))
	assert.Empty(t, NormalizeE164("12"))
	assert.Empty(t, NormalizeE164(""))
	assert.Empty(t, NormalizeE164("Not found"))
}
