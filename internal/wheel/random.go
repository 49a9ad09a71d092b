package wheel

import (
	crand "crypto/rand"
	"errors"
	"math/big"
)

var errInvalidRange = errors.New("random range must be positive")

// RandomInt returns a uniform integer in [0, n).
type RandomInt func(n int) (int, error)

// SecureRandomInt draws from crypto/rand.
func SecureRandomInt(n int) (int, error) {
	if n <= 0 {
		return 0, errInvalidRange
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
