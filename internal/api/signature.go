package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// VerifyWebhookSignature authenticates a webhook delivery: HMAC-SHA256
// over the exact raw body, base64-encoded per the platform's header
// convention, compared in constant time. It must see the untouched
// bytes — re-serializing a parsed payload changes field order and
// whitespace and produces false rejections. Never errors; any mismatch
// or missing input is simply false.
func VerifyWebhookSignature(rawBody []byte, providedSignature, secret string) bool {
	if providedSignature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
