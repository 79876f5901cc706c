package referral

import (
	"crypto/rand"
	"fmt"
)

// Uppercase base32-ish alphabet without easily-confused characters
// (0/O, 1/I/L), since ambassadors share codes verbally and in print.
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const codeLength = 8

// GenerateCode draws a random ambassador code. Rejection sampling keeps the
// draw unbiased; 217 is the largest multiple of 31 below 256.
func GenerateCode() (string, error) {
	const maxRandomByte = 217

	out := make([]byte, codeLength)
	buf := make([]byte, codeLength*2)
	written := 0

	for written < codeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		for _, b := range buf {
			if b >= maxRandomByte {
				continue
			}
			out[written] = codeAlphabet[int(b)%len(codeAlphabet)]
			written++
			if written == codeLength {
				break
			}
		}
	}

	return string(out), nil
}
