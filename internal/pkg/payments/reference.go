package payments

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/EberechiLabs/FestHive/internal/pkg/env"
)

// Base36 alphabet for the random reference suffix.
const referenceAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const referenceSuffixLength = 6

// GenerateReference produces an opaque reference correlating one payment
// attempt across checkout, gateway and verification:
//
//	{prefix}_{TYPE}_{unix millis}_{6 char base36}
//
// Timestamp plus randomness makes collisions practically impossible for one
// festival run. References are idempotency hints, not security tokens.
func GenerateReference(paymentType, prefix string) (string, error) {
	tag := strings.TrimSpace(prefix)
	if tag == "" {
		tag = env.GetEnv("PAYMENT_REFERENCE_PREFIX", "FESTHIVE")
	}

	suffix, err := randomBase36(referenceSuffixLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference suffix: %w", err)
	}

	return fmt.Sprintf("%s_%s_%d_%s",
		tag,
		strings.ToUpper(strings.TrimSpace(paymentType)),
		time.Now().UnixMilli(),
		suffix,
	), nil
}

// randomBase36 draws random base36 characters with rejection sampling to
// avoid modulo bias. 252 is the largest multiple of 36 below 256.
func randomBase36(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid suffix length: %d", length)
	}

	const maxRandomByte = 252

	out := make([]byte, length)
	buf := make([]byte, length*2)
	written := 0

	for written < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		for _, b := range buf {
			if b >= maxRandomByte {
				continue
			}
			out[written] = referenceAlphabet[int(b)%len(referenceAlphabet)]
			written++
			if written == length {
				break
			}
		}
	}

	return string(out), nil
}
