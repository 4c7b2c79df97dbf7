package auth

import (
	"strings"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestValidEmail(t *testing.T) {
	good := []string{"alice@example.com", "a.b+c@sub.domain.org"}
	bad := []string{"", "alice", "alice@", "@example.com", "a b@example.com", "alice@example"}
	for _, e := range good {
		if !ValidEmail(e) {
			t.Fatalf("%q: expected valid", e)
		}
	}
	for _, e := range bad {
		if ValidEmail(e) {
			t.Fatalf("%q: expected invalid", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		in       string
		failures int
	}{
		{"Passw0rd!", 0},
		{"Str0ng@Pass", 0},
		{"short", 4},
		{"alllowercase1@", 1},
		{"NOLOWERCASE1@", 0}, // lowercase is not required by the policy
		{"NoDigits!!", 1},
		{"NoSymbol123", 1},
	}
	for _, tc := range cases {
		got := ValidatePassword(tc.in)
		if len(got) != tc.failures {
			t.Fatalf("%q: expected %d failures, got %d: %v", tc.in, tc.failures, len(got), got)
		}
	}
}

func TestValidatePasswordCollectsAll(t *testing.T) {
	failures := ValidatePassword("abc")
	if len(failures) != 4 {
		t.Fatalf("expected all 4 rules to fail, got %v", failures)
	}
	joined := strings.Join(failures, ". ")
	for _, want := range []string{"8 characters", "uppercase", "number", "special character"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing rule mentioning %q in %q", want, joined)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Passw0rd!" || hash == "" {
		t.Fatal("hash must be opaque and non-empty")
	}
	if !CheckPassword(hash, "Passw0rd!") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatal("wrong password accepted")
	}
}
