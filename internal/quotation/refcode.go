package quotation

import (
	"crypto/rand"
	"math/big"
)

const refAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewReferenceCode returns a short random reference in the form Q-XXXXXXXX.
// The renderer takes the generator as a dependency so tests can pin it.
func NewReferenceCode() string {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(refAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a fixed character rather than aborting a render.
			buf[i] = refAlphabet[0]
			continue
		}
		buf[i] = refAlphabet[n.Int64()]
	}
	return "Q-" + string(buf)
}
