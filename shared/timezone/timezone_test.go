package timezone_test

import (
	"hotel/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestStampHasMicrosecondPrecision(t *testing.T) {
	stamp := timezone.Stamp()

	assert.Zero(t, stamp.Nanosecond()%int(time.Microsecond))
}

func TestFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)

	formatted := timezone.Format(testTime, time.RFC3339)
	parsed, err := time.Parse(time.RFC3339, formatted)

	assert.NoError(t, err)
	assert.True(t, parsed.Equal(testTime))
}
