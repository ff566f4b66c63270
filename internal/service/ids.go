package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randomBase36 returns n uniformly random upper-case base36 characters.
func randomBase36(n int) string {
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Chars))))
		if err != nil {
			// crypto/rand failing means the platform entropy source is
			// broken; fall back to the clock rather than return an error
			// from every id call site.
			out[i] = base36Chars[time.Now().UnixNano()%int64(len(base36Chars))]
			continue
		}
		out[i] = base36Chars[idx.Int64()]
	}
	return string(out)
}

// generateMRID builds a human-facing registration id:
// {F|I}{epoch-millis}{6 random base36 chars}.
func generateMRID(prefix string) string {
	return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixMilli(), randomBase36(6))
}

// newEntityID builds a listing/record id. The millisecond timestamp alone
// collides under concurrent creates, so a short random suffix is appended.
func newEntityID(prefix string) string {
	return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixMilli(), randomBase36(4))
}

// generateOTP returns a 6-digit decimal code.
func generateOTP() (string, error) {
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generating otp digit: %w", err)
		}
		code[i] = byte(n.Int64()) + '0'
	}
	return string(code), nil
}
