package payments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferenceShape(t *testing.T) {
	ref, err := GenerateReference("tour_booking", "OJA26")
	assert.NoError(t, err)

	parts := strings.Split(ref, "_")
	// prefix, TOUR, BOOKING, millis, suffix: the type itself contains an
	// underscore, so split from both ends instead.
	assert.True(t, strings.HasPrefix(ref, "OJA26_TOUR_BOOKING_"), "got %s", ref)
	suffix := parts[len(parts)-1]
	assert.Len(t, suffix, 6)
	for _, r := range suffix {
		assert.Contains(t, referenceAlphabet, string(r))
	}
}

func TestGenerateReferenceDefaultPrefix(t *testing.T) {
	ref, err := GenerateReference("general", "")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "FESTHIVE_GENERAL_"), "got %s", ref)
}

func TestGenerateReferenceUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		ref, err := GenerateReference("event_registration", "")
		if err != nil {
			t.Fatalf("generate failed on call %d: %v", i, err)
		}
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference after %d calls: %s", i, ref)
		}
		seen[ref] = struct{}{}
	}
}
