package quota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifyCheckoutWebhookSignature(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	secret := "whsec_test"
	now := time.Unix(1700000000, 0)

	header := SignCheckoutWebhook(payload, secret, now)
	assert.True(t, VerifyCheckoutWebhookSignature(payload, header, secret, now))

	// Within tolerance either direction.
	assert.True(t, VerifyCheckoutWebhookSignature(payload, header, secret, now.Add(4*time.Minute)))
	assert.True(t, VerifyCheckoutWebhookSignature(payload, header, secret, now.Add(-4*time.Minute)))
}

func TestVerifyCheckoutWebhookSignatureRejects(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	secret := "whsec_test"
	now := time.Unix(1700000000, 0)
	header := SignCheckoutWebhook(payload, secret, now)

	assert.False(t, VerifyCheckoutWebhookSignature(payload, "", secret, now), "empty header")
	assert.False(t, VerifyCheckoutWebhookSignature(payload, header, "", now), "empty secret")
	assert.False(t, VerifyCheckoutWebhookSignature(payload, header, "whsec_other", now), "wrong secret")
	assert.False(t, VerifyCheckoutWebhookSignature([]byte("tampered"), header, secret, now), "tampered payload")
	assert.False(t, VerifyCheckoutWebhookSignature(payload, header, secret, now.Add(6*time.Minute)), "stale timestamp")
	assert.False(t, VerifyCheckoutWebhookSignature(payload, "t=abc,v1=zz", secret, now), "garbage header")
}
