package contract

import (
	"testing"

	"github.com/iov-one/docsign/crypto"
	"github.com/iov-one/docsign/docsigntest"
	"github.com/iov-one/docsign/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttest(t *testing.T) {
	alice := docsigntest.SeededKey("alice")
	bob := docsigntest.SeededKey("bob")
	msg := []byte("payload")

	sigA, err := crypto.SignMessage(alice, msg)
	require.NoError(t, err)
	sigB, err := crypto.SignMessage(bob, msg)
	require.NoError(t, err)

	attestors, err := Attest(msg, []*crypto.StdSignature{sigA, sigB, sigA})
	require.NoError(t, err)
	assert.Equal(t, 2, attestors.Len())
	assert.True(t, attestors.Has(alice.PublicKey().Address()))
	assert.True(t, attestors.Has(bob.PublicKey().Address()))

	empty, err := Attest(msg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = Attest([]byte("tampered"), []*crypto.StdSignature{sigA})
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestSignBytesBindsVersion(t *testing.T) {
	a := docsigntest.SequenceAddress(1)
	r := newRecord("doc", 1, a)

	first, err := SignBytes(r, SignAction(a))
	require.NoError(t, err)

	next := r.Copy()
	next.Version++
	second, err := SignBytes(next, SignAction(a))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	other, err := SignBytes(r, ParseAction("revoke", a))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
