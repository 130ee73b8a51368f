package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/sajankarki/sewabazar-backend/app/models"
)

// EsewaSignedFieldNames is fixed by the integration contract: the checkout
// form is always signed over exactly these fields, in this order.
const EsewaSignedFieldNames = "total_amount,transaction_uuid,product_code"

const (
	defaultFormURL   = "https://rc-epay.esewa.com.np/api/epay/main/v2/form"
	defaultStatusURL = "https://rc.esewa.com.np/api/epay/transaction/status/"
)

func esewaFormURL() string {
	if u := os.Getenv("ESEWA_FORM_URL"); u != "" {
		return u
	}
	return defaultFormURL
}

func esewaStatusURL() string {
	if u := os.Getenv("ESEWA_STATUS_URL"); u != "" {
		return u
	}
	return defaultStatusURL
}

// FormatAmount renders an amount the way the gateway expects it in form
// fields and signatures: no trailing zeros, "1130" rather than "1130.00".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildPaymentForm assembles the signed checkout payload for one
// transaction attempt. Pure apart from env config reads: the caller decides
// what to do with the payload, no redirect happens here.
func BuildPaymentForm(baseAmount, taxAmount, serviceCharge, deliveryCharge float64, transactionUUID, successURL, failureURL string) (models.EsewaPaymentForm, error) {
	secret := os.Getenv("ESEWA_SECRET_KEY")
	if secret == "" {
		return models.EsewaPaymentForm{}, errors.New("esewa secret key not set")
	}
	productCode := os.Getenv("ESEWA_PRODUCT_CODE")
	if productCode == "" {
		return models.EsewaPaymentForm{}, errors.New("esewa product code not set")
	}

	totalAmount := baseAmount + taxAmount + serviceCharge + deliveryCharge

	fields := map[string]string{
		"total_amount":     FormatAmount(totalAmount),
		"transaction_uuid": transactionUUID,
		"product_code":     productCode,
	}
	signature, err := SignFields([]string{"total_amount", "transaction_uuid", "product_code"}, fields, secret)
	if err != nil {
		return models.EsewaPaymentForm{}, err
	}

	return models.EsewaPaymentForm{
		FormURL:               esewaFormURL(),
		Amount:                FormatAmount(baseAmount),
		TaxAmount:             FormatAmount(taxAmount),
		TotalAmount:           FormatAmount(totalAmount),
		TransactionUUID:       transactionUUID,
		ProductCode:           productCode,
		ProductServiceCharge:  FormatAmount(serviceCharge),
		ProductDeliveryCharge: FormatAmount(deliveryCharge),
		SuccessURL:            successURL,
		FailureURL:            failureURL,
		SignedFieldNames:      EsewaSignedFieldNames,
		Signature:             signature,
	}, nil
}

// CheckPaymentStatus queries the gateway's transaction-status endpoint and
// normalizes the response. A transport failure returns a NOT_FOUND result
// together with models.ErrGatewayUnreachable so callers can tell "retry
// later" apart from an authoritative FAILED. A non-2xx response is also
// normalized to NOT_FOUND, with the body kept in Message. Safe to call
// repeatedly for the same transaction.
func CheckPaymentStatus(productCode, transactionUUID string, totalAmount float64) (models.PaymentStatusResult, error) {
	q := url.Values{}
	q.Set("product_code", productCode)
	q.Set("total_amount", FormatAmount(totalAmount))
	q.Set("transaction_uuid", transactionUUID)

	client := &http.Client{Timeout: 15 * time.Second}
	res, err := client.Get(esewaStatusURL() + "?" + q.Encode())
	if err != nil {
		return models.PaymentStatusResult{Status: models.GatewayStatusNotFound, Message: err.Error()}, models.ErrGatewayUnreachable
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return models.PaymentStatusResult{
			Status:  models.GatewayStatusNotFound,
			Message: "gateway returned status " + strconv.Itoa(res.StatusCode),
		}, nil
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return models.PaymentStatusResult{Status: models.GatewayStatusNotFound, Message: "invalid gateway response: " + err.Error()}, nil
	}

	result := models.PaymentStatusResult{Status: models.GatewayStatusNotFound}
	if s, ok := payload["status"].(string); ok && s != "" {
		result.Status = s
	}
	if r, ok := payload["ref_id"].(string); ok {
		result.RefID = r
	}
	switch v := payload["total_amount"].(type) {
	case float64:
		result.TotalAmount = v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			result.TotalAmount = f
		}
	}
	if m, ok := payload["message"].(string); ok {
		result.Message = m
	}
	return result, nil
}

// DecodeCallbackData decodes the Base64-JSON payload the gateway appends to
// the success/failure redirect as the "data" query parameter. All values
// are kept as strings so the signature can be recomputed over the exact
// bytes the gateway signed.
func DecodeCallbackData(data string) (map[string]string, error) {
	raw, err := base64Decode(data)
	if err != nil {
		return nil, err
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(generic))
	for k, v := range generic {
		switch t := v.(type) {
		case string:
			fields[k] = t
		case float64:
			fields[k] = FormatAmount(t)
		}
	}
	return fields, nil
}

// The gateway is inconsistent about padding and the URL-safe alphabet in
// the redirect parameter, so try the standard variants in turn.
func base64Decode(s string) ([]byte, error) {
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	if raw, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	if raw, err := base64.URLEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	return base64.RawURLEncoding.DecodeString(s)
}
