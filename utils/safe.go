package utils

import (
	"encoding/hex"
	"strings"
)

// SafeFirst16Bytes returns the first line of a hex dump of data, which shows
// at most 16 bytes. It is meant for logging binary data.
func SafeFirst16Bytes(data []byte) string {
	if len(data) == 0 {
		return "<empty>"
	}

	return strings.TrimPrefix(
		strings.SplitN(hex.Dump(data), "\n", 2)[0],
		"00000000  ",
	)
}

// SafeFingerprint returns the hex encoding of the first n bytes of data,
// followed by an ellipsis if data is longer.
func SafeFingerprint(data []byte, n int) string {
	switch {
	case len(data) == 0:
		return "<empty>"
	case n <= 0:
		return "…"
	case len(data) <= n:
		return hex.EncodeToString(data)
	default:
		return hex.EncodeToString(data[:n]) + "…"
	}
}
