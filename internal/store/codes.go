package store

import (
	"crypto/rand"
	"math/big"

	"github.com/erazemk/shramba/internal/model"
)

// codeAlphabet excludes lookalike characters (0/O, 1/I/L) since codes end up
// on printed QR labels and get typed in by hand.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// generateUniqueCode creates a random item lookup code. Uniqueness is
// enforced by the database index; callers retry on collision.
func generateUniqueCode() (string, error) {
	result := make([]byte, model.UniqueCodeLen)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		result[i] = codeAlphabet[n.Int64()]
	}
	return string(result), nil
}
