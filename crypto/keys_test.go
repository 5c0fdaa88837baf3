package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/docsign/docsigntest/assert"
	"github.com/iov-one/docsign/errors"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	if bytes.Equal(sig.Ed25519, sig2.Ed25519) {
		t.Fatal("different messages produce the same signature")
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}

	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg2, sig) {
		t.Fatal("verified message signature of the wrong message")
	}

	if public.Verify(msg, &Signature{}) {
		t.Fatal("verified an empty signature of a message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()
	empty := PublicKey{}

	assert.Nil(t, pub.Condition().Validate())
	assert.Nil(t, pub2.Condition().Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("two different keys have the same condition")
	}
	if pub.Address() == pub2.Address() {
		t.Fatal("two different keys have the same address")
	}
	assert.Nil(t, empty.Condition())
}

func TestSeededKeyIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivKeyEd25519FromSeed(seed)
	assert.Nil(t, err)
	b, err := PrivKeyEd25519FromSeed(seed)
	assert.Nil(t, err)
	assert.Equal(t, a.PublicKey(), b.PublicKey())

	_, err = PrivKeyEd25519FromSeed([]byte("short"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestPrivateKeySerialization(t *testing.T) {
	key := GenPrivKeyEd25519()
	raw, err := key.Marshal()
	assert.Nil(t, err)

	var loaded PrivateKey
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, key.PublicKey(), loaded.PublicKey())
}

func TestVerifySignature(t *testing.T) {
	key := GenPrivKeyEd25519()
	msg := []byte("document")

	sig, err := SignMessage(key, msg)
	assert.Nil(t, err)

	addr, err := VerifySignature(msg, sig)
	assert.Nil(t, err)
	assert.Equal(t, key.PublicKey().Address(), addr)

	_, err = VerifySignature([]byte("tampered"), sig)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = VerifySignature(msg, &StdSignature{PubKey: key.PublicKey()})
	assert.IsErr(t, errors.ErrEmpty, err)

	_, err = VerifySignature(msg, nil)
	assert.IsErr(t, errors.ErrEmpty, err)
}
