package order

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// NewNumber builds the human-readable order identifier shown to customers and
// sent to the payment provider as the session reference, e.g.
// FF-20260828-4F1A9C03BD. The uuid primary key stays internal. Five random
// bytes keep same-day collisions out of reach at any plausible order volume.
func NewNumber(now time.Time) string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// no entropy source: fall back to the clock so numbers still differ
		// within the day
		binary.BigEndian.PutUint32(b[1:], uint32(now.UnixNano()))
	}
	return fmt.Sprintf("FF-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(b)))
}
