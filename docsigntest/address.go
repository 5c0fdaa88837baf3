package docsigntest

import (
	"testing"

	"github.com/iov-one/docsign"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// docsign.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) docsign.Address {
	t.Helper()

	addr, err := docsign.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
