package quota

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProviderStripe identifies the checkout webhook source in webhook_events.
const ProviderStripe = "stripe"

const signatureTolerance = 5 * time.Minute

// VerifyCheckoutWebhookSignature checks a Stripe-style signature header of the
// form "t=<unix>,v1=<hex hmac>". The MAC is HMAC-SHA256 over "<t>.<payload>"
// with the shared endpoint secret. Timestamps outside the tolerance window are
// rejected to limit replay.
func VerifyCheckoutWebhookSignature(payload []byte, signatureHeader, secret string, now time.Time) bool {
	header := strings.TrimSpace(signatureHeader)
	if header == "" || strings.TrimSpace(secret) == "" {
		return false
	}

	ts := int64(-1)
	var candidates [][]byte
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				ts = parsed
			}
		case "v1":
			if sig, err := hex.DecodeString(strings.ToLower(v)); err == nil {
				candidates = append(candidates, sig)
			}
		}
	}
	if ts < 0 || len(candidates) == 0 {
		return false
	}

	age := now.Sub(time.Unix(ts, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return false
	}

	expected := checkoutMAC(payload, secret, ts)
	for _, sig := range candidates {
		if hmac.Equal(sig, expected) {
			return true
		}
	}
	return false
}

// SignCheckoutWebhook produces a valid signature header for the given payload.
// Used by tests and local tooling.
func SignCheckoutWebhook(payload []byte, secret string, at time.Time) string {
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(checkoutMAC(payload, secret, at.Unix())))
}

func checkoutMAC(payload []byte, secret string, ts int64) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return mac.Sum(nil)
}
