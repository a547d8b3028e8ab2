package sanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"_id":"app-1","_type":"jobApplication"}`)
	header := SignPayload(secret, body, "1714000000000")

	assert.True(t, VerifySignature(secret, body, header))
}

func TestVerifySignatureRejects(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"_id":"app-1"}`)
	valid := SignPayload(secret, body, "1714000000000")

	tests := []struct {
		name   string
		secret string
		body   []byte
		header string
	}{
		{name: "wrong secret", secret: "whsec_other", body: body, header: valid},
		{name: "tampered body", secret: secret, body: []byte(`{"_id":"app-2"}`), header: valid},
		{name: "tampered timestamp", secret: secret, body: body, header: "t=1714000000001,v1=" + valid[len("t=1714000000000,v1="):]},
		{name: "empty header", secret: secret, body: body, header: ""},
		{name: "empty secret", secret: "", body: body, header: valid},
		{name: "missing v1", secret: secret, body: body, header: "t=1714000000000"},
		{name: "missing timestamp", secret: secret, body: body, header: "v1=abc"},
		{name: "garbage header", secret: secret, body: body, header: "not a signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifySignature(tt.secret, tt.body, tt.header))
		})
	}
}

func TestVerifySignatureToleratesSpacing(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{}`)
	header := SignPayload(secret, body, "1714000000000")

	spaced := "t=1714000000000, v1=" + header[len("t=1714000000000,v1="):]
	assert.True(t, VerifySignature(secret, body, spaced))
}
