package domain

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// IDLength is the length of a rendered identifier.
const IDLength = 24

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID generates a 12-byte identifier rendered as 24 lower-case hex characters.
// The first four bytes hold the creation time in unix seconds, so identifiers
// sort roughly by creation time; the remaining eight bytes are random.
func NewID() string {
	return newIDAt(time.Now())
}

func newIDAt(t time.Time) string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(t.Unix()))
	_, _ = rand.Read(b[4:])
	return hex.EncodeToString(b[:])
}

// IsValidID reports whether s is a well-formed identifier.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}

// ParseID validates s and returns its canonical lower-case form.
func ParseID(s string) (string, error) {
	if !IsValidID(s) {
		return "", ErrInvalidID
	}
	return strings.ToLower(s), nil
}
