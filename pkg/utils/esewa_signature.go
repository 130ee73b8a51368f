package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// SignFields builds the canonical "k1=v1,k2=v2" string over the given field
// names in order, HMAC-SHA256s it with secret and returns the Base64
// signature. Every named field must be present in fields.
func SignFields(fieldNames []string, fields map[string]string, secret string) (string, error) {
	if len(fieldNames) == 0 {
		return "", errors.New("no signed field names")
	}
	pairs := make([]string, 0, len(fieldNames))
	for _, name := range fieldNames {
		name = strings.TrimSpace(name)
		value, ok := fields[name]
		if !ok {
			return "", errors.New("missing signed field: " + name)
		}
		pairs = append(pairs, name+"="+value)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, ",")))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// VerifySignature recomputes the signature over the response's own fields,
// in the order its signed_field_names declares, and compares it against the
// provided signature. Any missing field means the response cannot be
// trusted and verification fails closed.
func VerifySignature(fields map[string]string, providedSignature, secret string) bool {
	signedFieldNames, ok := fields["signed_field_names"]
	if !ok || signedFieldNames == "" || providedSignature == "" {
		return false
	}

	expected, err := SignFields(strings.Split(signedFieldNames, ","), fields, secret)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
