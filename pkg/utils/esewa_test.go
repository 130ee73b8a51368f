package utils

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sajankarki/sewabazar-backend/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaymentForm(t *testing.T) {
	t.Setenv("ESEWA_SECRET_KEY", testSecret)
	t.Setenv("ESEWA_PRODUCT_CODE", "EPAYTEST")

	form, err := BuildPaymentForm(1000, 130, 0, 0, "240601-102233-ab12", "https://example.com/success", "https://example.com/failure")
	require.NoError(t, err)

	assert.Equal(t, "1000", form.Amount)
	assert.Equal(t, "130", form.TaxAmount)
	assert.Equal(t, "1130", form.TotalAmount)
	assert.Equal(t, "EPAYTEST", form.ProductCode)
	assert.Equal(t, "total_amount,transaction_uuid,product_code", form.SignedFieldNames)
	assert.Equal(t, "https://example.com/success", form.SuccessURL)
	assert.Equal(t, "https://example.com/failure", form.FailureURL)

	// The signature must verify against the form's own fields.
	fields := map[string]string{
		"total_amount":       form.TotalAmount,
		"transaction_uuid":   form.TransactionUUID,
		"product_code":       form.ProductCode,
		"signed_field_names": form.SignedFieldNames,
	}
	assert.True(t, VerifySignature(fields, form.Signature, testSecret))
}

func TestBuildPaymentForm_MissingConfig(t *testing.T) {
	t.Setenv("ESEWA_SECRET_KEY", "")
	t.Setenv("ESEWA_PRODUCT_CODE", "EPAYTEST")
	_, err := BuildPaymentForm(1000, 130, 0, 0, "tid", "s", "f")
	require.Error(t, err)

	t.Setenv("ESEWA_SECRET_KEY", testSecret)
	t.Setenv("ESEWA_PRODUCT_CODE", "")
	_, err = BuildPaymentForm(1000, 130, 0, 0, "tid", "s", "f")
	require.Error(t, err)
}

func TestCheckPaymentStatus_Complete(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "EPAYTEST", r.URL.Query().Get("product_code"))
		assert.Equal(t, "1130", r.URL.Query().Get("total_amount"))
		assert.Equal(t, "240601-102233-ab12", r.URL.Query().Get("transaction_uuid"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"product_code":     "EPAYTEST",
			"transaction_uuid": "240601-102233-ab12",
			"total_amount":     1130,
			"status":           "COMPLETE",
			"ref_id":           "0001AB",
		})
	}))
	defer srv.Close()
	t.Setenv("ESEWA_STATUS_URL", srv.URL)

	res, err := CheckPaymentStatus("EPAYTEST", "240601-102233-ab12", 1130)
	require.NoError(t, err)
	assert.Equal(t, models.GatewayStatusComplete, res.Status)
	assert.Equal(t, "0001AB", res.RefID)
	assert.Equal(t, float64(1130), res.TotalAmount)

	// Repeated checks for a settled transaction are idempotent.
	again, err := CheckPaymentStatus("EPAYTEST", "240601-102233-ab12", 1130)
	require.NoError(t, err)
	assert.Equal(t, res.Status, again.Status)
	assert.Equal(t, 2, calls)
}

func TestCheckPaymentStatus_StringAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       "COMPLETE",
			"total_amount": "1130", // some gateway variants send the amount as a string
			"ref_id":       "0001AB",
		})
	}))
	defer srv.Close()
	t.Setenv("ESEWA_STATUS_URL", srv.URL)

	res, err := CheckPaymentStatus("EPAYTEST", "tid", 1130)
	require.NoError(t, err)
	assert.Equal(t, models.GatewayStatusComplete, res.Status)
	assert.Equal(t, float64(1130), res.TotalAmount)
}

func TestCheckPaymentStatus_Non2xxIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("ESEWA_STATUS_URL", srv.URL)

	res, err := CheckPaymentStatus("EPAYTEST", "tid", 1130)
	require.NoError(t, err)
	assert.Equal(t, models.GatewayStatusNotFound, res.Status)
	assert.NotEmpty(t, res.Message)
}

func TestCheckPaymentStatus_NetworkErrorIsGatewayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	t.Setenv("ESEWA_STATUS_URL", srv.URL)

	res, err := CheckPaymentStatus("EPAYTEST", "tid", 1130)
	require.ErrorIs(t, err, models.ErrGatewayUnreachable)
	assert.Equal(t, models.GatewayStatusNotFound, res.Status)
	assert.NotEmpty(t, res.Message)
}

func TestDecodeCallbackData(t *testing.T) {
	payload := map[string]interface{}{
		"transaction_code":   "000AWEO",
		"status":             "COMPLETE",
		"total_amount":       1130,
		"transaction_uuid":   "240601-102233-ab12",
		"product_code":       "EPAYTEST",
		"signed_field_names": "transaction_code,status,total_amount,transaction_uuid,product_code,signed_field_names",
		"signature":          "abc=",
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	fields, err := DecodeCallbackData(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, "COMPLETE", fields["status"])
	assert.Equal(t, "1130", fields["total_amount"])
	assert.Equal(t, "240601-102233-ab12", fields["transaction_uuid"])

	// URL-safe, unpadded variant decodes too.
	fields, err = DecodeCallbackData(base64.RawURLEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, "EPAYTEST", fields["product_code"])
}

func TestDecodeCallbackData_Invalid(t *testing.T) {
	_, err := DecodeCallbackData("%%%not-base64%%%")
	require.Error(t, err)

	_, err = DecodeCallbackData(base64.StdEncoding.EncodeToString([]byte("not json")))
	require.Error(t, err)
}
