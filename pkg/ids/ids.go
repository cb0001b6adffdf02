// Package ids generates short identifiers for events, participants and
// participant links. They are unique enough for one event's lifetime but are
// not secrets: math/rand is used on purpose.
package ids

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// now is replaced in tests.
var now = time.Now

// NewID returns prefix_<time><random>, e.g. "evt_m1x2k3ab4cd".
func NewID(prefix string) string {
	return prefix + "_" + timePart() + randomPart(5)
}

// NewToken returns the access token of a participant link.
func NewToken() string {
	return "tk_" + timePart() + randomPart(12)
}

func timePart() string {
	return strconv.FormatInt(now().UnixMilli(), 36)
}

func randomPart(n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}
