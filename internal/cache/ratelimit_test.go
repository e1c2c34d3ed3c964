package cache

import "testing"

func TestHashIP_Deterministic(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"

	if hashIP(ip) != hashIP(ip) {
		t.Error("same IP should produce same hash")
	}
}

func TestHashIP_DistinctInputs(t *testing.T) {
	t.Parallel()

	if hashIP("10.0.0.1") == hashIP("10.0.0.2") {
		t.Error("distinct IPs should produce distinct hashes")
	}
}

func TestHashIP_Length(t *testing.T) {
	t.Parallel()

	for _, ip := range []string{"192.168.1.1", "127.0.0.1", "::1", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"} {
		if got := hashIP(ip); len(got) != 16 {
			t.Errorf("hashIP(%q) length = %d, want 16", ip, len(got))
		}
	}
}
