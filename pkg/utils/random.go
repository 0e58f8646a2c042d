package utils

import (
	"crypto/rand"
	"math/big"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomID returns a random alphanumeric string of length n. Stored
// avatar files are named with it, so uploaded filenames never reach the
// filesystem.
func GenerateRandomID(n int) string {
	limit := big.NewInt(int64(len(alphanumeric)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return ""
		}
		out[i] = alphanumeric[idx.Int64()]
	}
	return string(out)
}
