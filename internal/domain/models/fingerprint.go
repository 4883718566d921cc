package models

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"
)

// Fingerprint identifies a training input together with the fit options, so
// a stored model can be matched against the data it would be refit on.
func (in ModelInput) Fingerprint(cfg ModelConfig) string {
	h := sha256.New()
	var buf [16]byte
	for _, o := range in {
		binary.BigEndian.PutUint64(buf[:8], uint64(o.DS.Unix()))
		binary.BigEndian.PutUint64(buf[8:], math.Float64bits(o.Y))
		h.Write(buf[:])
	}
	// ModelConfig holds only scalars; Marshal cannot fail.
	b, _ := json.Marshal(cfg)
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}
