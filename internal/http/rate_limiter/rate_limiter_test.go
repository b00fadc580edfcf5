package rate_limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVisitor_SameLimiterPerClient(t *testing.T) {
	t.Cleanup(CleanupAllVisitors)
	Configure(1, 2)

	a := GetVisitor("10.0.0.1")
	assert.Same(t, a, GetVisitor("10.0.0.1"))
	assert.NotSame(t, a, GetVisitor("10.0.0.2"))
}

func TestGetVisitor_Burst(t *testing.T) {
	t.Cleanup(CleanupAllVisitors)
	Configure(0.001, 2)

	l := GetVisitor("10.0.0.3")
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}
