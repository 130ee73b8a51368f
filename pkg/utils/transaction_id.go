package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateTransactionUUID returns a gateway transaction identifier of the
// form YYMMDD-HHMMSS-xxxxxx from local wall-clock time. The bare
// second-resolution timestamp collides when the same user retries checkout
// within a second, so a random hex suffix is appended; the gateway treats
// the whole value as opaque and the timestamp prefix keeps ids sortable.
func GenerateTransactionUUID() (string, error) {
	now := time.Now()
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", now.Format("060102-150405"), hex.EncodeToString(b)), nil
}
