package main

import (
	"testing"
	"time"
)

func TestSessionValueRoundTrip(t *testing.T) {
	auth := newAuthService(nil, "secret")

	email, ok := auth.verifySessionValue(auth.createSessionValue("admin@lavender.test"))
	if !ok || email != "admin@lavender.test" {
		t.Fatalf("expected valid session for admin, got %q %v", email, ok)
	}
}

func TestSessionValueRejectsTampering(t *testing.T) {
	auth := newAuthService(nil, "secret")
	value := auth.createSessionValue("admin@lavender.test")

	if _, ok := newAuthService(nil, "other").verifySessionValue(value); ok {
		t.Fatalf("session signed with another secret must be rejected")
	}
	if _, ok := auth.verifySessionValue("x" + value); ok {
		t.Fatalf("modified payload must be rejected")
	}
	for _, bad := range []string{"", "no-dot", "payload.zz"} {
		if _, ok := auth.verifySessionValue(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestSessionValueExpires(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	auth := newAuthService(nil, "secret")
	auth.now = func() time.Time { return now }
	value := auth.createSessionValue("admin@lavender.test")

	now = now.Add(sessionMaxAge - time.Minute)
	if _, ok := auth.verifySessionValue(value); !ok {
		t.Fatalf("session should still be valid")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := auth.verifySessionValue(value); ok {
		t.Fatalf("session should have expired")
	}
}
