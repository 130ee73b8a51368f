package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "8gBm/:&EnhH.1/q"

func signedTestFields(t *testing.T) map[string]string {
	t.Helper()
	fields := map[string]string{
		"total_amount":       "1130",
		"transaction_uuid":   "240601-102233-ab12",
		"product_code":       "EPAYTEST",
		"signed_field_names": "total_amount,transaction_uuid,product_code",
	}
	sig, err := SignFields([]string{"total_amount", "transaction_uuid", "product_code"}, fields, testSecret)
	require.NoError(t, err)
	fields["signature"] = sig
	return fields
}

func TestSignFields_Deterministic(t *testing.T) {
	fields := map[string]string{
		"total_amount":     "1130",
		"transaction_uuid": "240601-102233-ab12",
		"product_code":     "EPAYTEST",
	}
	names := []string{"total_amount", "transaction_uuid", "product_code"}

	a, err := SignFields(names, fields, testSecret)
	require.NoError(t, err)
	b, err := SignFields(names, fields, testSecret)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestSignFields_MissingFieldErrors(t *testing.T) {
	_, err := SignFields([]string{"total_amount", "transaction_uuid"}, map[string]string{"total_amount": "100"}, testSecret)
	require.Error(t, err)
}

func TestVerifySignature_RoundTrip(t *testing.T) {
	fields := signedTestFields(t)
	assert.True(t, VerifySignature(fields, fields["signature"], testSecret))
}

func TestVerifySignature_TamperedFieldFails(t *testing.T) {
	for _, field := range []string{"total_amount", "transaction_uuid", "product_code"} {
		fields := signedTestFields(t)
		fields[field] = fields[field] + "0"
		assert.False(t, VerifySignature(fields, fields["signature"], testSecret), "tampered %s must not verify", field)
	}
}

func TestVerifySignature_WrongSecretFails(t *testing.T) {
	fields := signedTestFields(t)
	assert.False(t, VerifySignature(fields, fields["signature"], "some-other-secret"))
}

func TestVerifySignature_MissingSignedFieldFailsClosed(t *testing.T) {
	// signed_field_names references a field the payload doesn't carry:
	// verification must return false, not panic or error out.
	fields := signedTestFields(t)
	fields["signed_field_names"] = "total_amount,transaction_uuid,product_code,status"
	assert.False(t, VerifySignature(fields, fields["signature"], testSecret))
}

func TestVerifySignature_AbsentNamesOrSignatureFails(t *testing.T) {
	fields := signedTestFields(t)
	delete(fields, "signed_field_names")
	assert.False(t, VerifySignature(fields, fields["signature"], testSecret))

	fields = signedTestFields(t)
	assert.False(t, VerifySignature(fields, "", testSecret))
}

func TestVerifySignature_OrderComesFromResponse(t *testing.T) {
	// The verifier must honour the order declared by the response itself.
	fields := map[string]string{
		"transaction_uuid":   "240601-102233-ab12",
		"total_amount":       "1130",
		"product_code":       "EPAYTEST",
		"signed_field_names": "transaction_uuid,total_amount,product_code",
	}
	sig, err := SignFields([]string{"transaction_uuid", "total_amount", "product_code"}, fields, testSecret)
	require.NoError(t, err)
	assert.True(t, VerifySignature(fields, sig, testSecret))

	// The same signature against the default order must fail.
	fields["signed_field_names"] = "total_amount,transaction_uuid,product_code"
	assert.False(t, VerifySignature(fields, sig, testSecret))
}
