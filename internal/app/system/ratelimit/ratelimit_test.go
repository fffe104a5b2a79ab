package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_Window(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("fourth attempt should be limited")
	}
	// Other keys have their own window.
	if !l.Allow("10.0.0.2") {
		t.Error("a different key should not be limited")
	}

	l.Reset("10.0.0.1")
	if !l.Allow("10.0.0.1") {
		t.Error("reset should reopen the window")
	}
}

func TestLimiter_Expiry(t *testing.T) {
	l := New(1, 10*time.Millisecond)

	if !l.Allow("k") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second attempt should be limited")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("expired window should reopen")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/login", nil)
	r.RemoteAddr = "203.0.113.9:4431"
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("ClientIP = %q, want 203.0.113.9", got)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if got := ClientIP(r); got != "198.51.100.7" {
		t.Errorf("ClientIP with XFF = %q, want 198.51.100.7", got)
	}
}

func TestLoginLimiter(t *testing.T) {
	ll := &LoginLimiter{
		ip:    New(100, time.Minute),
		email: New(2, time.Minute),
	}

	r := httptest.NewRequest("POST", "/auth/login", nil)
	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "Target@Lab.test"); !ok {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	// Case differences fold onto the same account key.
	if ok, msg := ll.Check(r, "target@lab.test"); ok || msg == "" {
		t.Error("third attempt on the account should be limited with a message")
	}

	ll.ResetEmail("TARGET@lab.test")
	if ok, _ := ll.Check(r, "target@lab.test"); !ok {
		t.Error("reset after successful sign-in should reopen the account")
	}
}
