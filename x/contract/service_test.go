package contract

import (
	"bytes"
	"testing"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/crypto"
	"github.com/iov-one/docsign/docsigntest"
	"github.com/iov-one/docsign/errors"
	"github.com/iov-one/docsign/gconf"
	"github.com/iov-one/docsign/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestServiceSigningFlow(t *testing.T) {
	var logs bytes.Buffer
	svc := NewService(log.NewTMLogger(log.NewSyncWriter(&logs)))
	db := store.MemStore()

	a := docsigntest.SequenceAddress(1)
	b := docsigntest.SequenceAddress(2)
	c := docsigntest.SequenceAddress(3)
	outsider := docsigntest.SequenceAddress(4)

	created, err := svc.Create(db, newRecord("contract", 2, a, b, c))
	require.NoError(t, err)
	doc := created.DocumentHash
	assert.Contains(t, logs.String(), "record created")

	r, err := svc.Sign(db, doc, SignAction(b), docsign.NewAddressSet(b))
	require.NoError(t, err)
	assert.Equal(t, []docsign.Address{b}, r.SignaturesCollected)
	assert.Equal(t, uint64(2), r.Version)

	_, executed, err := svc.Status(db, doc)
	require.NoError(t, err)
	assert.False(t, executed)

	denials := map[string]struct {
		action    Action
		attestors docsign.AddressSet
		wantErr   *errors.Error
	}{
		"duplicate": {
			action:    SignAction(b),
			attestors: docsign.NewAddressSet(b),
			wantErr:   ErrDuplicateSignature,
		},
		"outsider": {
			action:    SignAction(outsider),
			attestors: docsign.NewAddressSet(outsider),
			wantErr:   ErrUnauthorizedSigner,
		},
		"not attested": {
			action:    SignAction(a),
			attestors: docsign.NewAddressSet(b),
			wantErr:   ErrMissingAttestation,
		},
		"unsupported": {
			action:    ParseAction("finalize", a),
			attestors: docsign.NewAddressSet(a),
			wantErr:   ErrUnsupportedAction,
		},
	}
	for testName, tc := range denials {
		t.Run(testName, func(t *testing.T) {
			_, err := svc.Sign(db, doc, tc.action, tc.attestors)
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)

			// A denial never writes.
			stored, _, err := svc.Status(db, doc)
			require.NoError(t, err)
			assert.Equal(t, r, stored)
		})
	}
	assert.Contains(t, logs.String(), "transition denied")

	r, err = svc.Sign(db, doc, SignAction(a), docsign.NewAddressSet(a, c))
	require.NoError(t, err)
	assert.Equal(t, []docsign.Address{b, a}, r.SignaturesCollected)
	assert.True(t, r.Executed())

	// Executed records still accept missing signatures.
	r, err = svc.Sign(db, doc, SignAction(c), docsign.NewAddressSet(c))
	require.NoError(t, err)
	assert.Len(t, r.SignaturesCollected, 3)
	assert.Equal(t, uint64(4), r.Version)
}

func TestServiceSignUnknownDocument(t *testing.T) {
	svc := NewService(nil)
	a := docsigntest.SequenceAddress(1)
	_, err := svc.Sign(store.MemStore(), docsign.HashDocument([]byte("nope")), SignAction(a), docsign.NewAddressSet(a))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestServiceCreate(t *testing.T) {
	a := docsigntest.SequenceAddress(1)
	b := docsigntest.SequenceAddress(2)
	c := docsigntest.SequenceAddress(3)

	cases := map[string]struct {
		conf    *Configuration
		record  *Record
		wantErr *errors.Error
	}{
		"default configuration": {
			record: newRecord("doc", 2, a, b, c),
		},
		"invalid record": {
			record:  newRecord("doc", 4, a, b, c),
			wantErr: errors.ErrModel,
		},
		"record with signatures": {
			record: &Record{
				DocumentHash:        docsign.HashDocument([]byte("doc")),
				RequiredSigners:     addrs(a, b),
				SignaturesCollected: addrs(a),
				Threshold:           1,
				ContractCreator:     a,
			},
			wantErr: errors.ErrState,
		},
		"configuration limits signers": {
			conf:    &Configuration{MaxSigners: 2},
			record:  newRecord("doc", 2, a, b, c),
			wantErr: errors.ErrModel,
		},
		"configuration allows signers": {
			conf:   &Configuration{MaxSigners: 3},
			record: newRecord("doc", 2, a, b, c),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.conf != nil {
				require.NoError(t, gconf.Save(db, ConfigPackage, tc.conf))
			}
			_, err := NewService(nil).Create(db, tc.record)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestServiceSignWithSignatures(t *testing.T) {
	svc := NewService(nil)
	db := store.MemStore()

	alice := docsigntest.SeededKey("alice")
	bob := docsigntest.SeededKey("bob")
	a := alice.PublicKey().Address()
	b := bob.PublicKey().Address()

	created, err := svc.Create(db, newRecord("deal", 2, a, b))
	require.NoError(t, err)

	sign := func(r *Record, key *crypto.PrivateKey, action Action) *crypto.StdSignature {
		msg, err := SignBytes(r, action)
		require.NoError(t, err)
		sig, err := crypto.SignMessage(key, msg)
		require.NoError(t, err)
		return sig
	}

	// Bob cannot sign on behalf of alice.
	action := SignAction(a)
	_, err = svc.SignWithSignatures(db, created.DocumentHash, action,
		[]*crypto.StdSignature{sign(created, bob, action)})
	assert.True(t, ErrMissingAttestation.Is(err), "unexpected error: %+v", err)

	r, err := svc.SignWithSignatures(db, created.DocumentHash, action,
		[]*crypto.StdSignature{sign(created, alice, action)})
	require.NoError(t, err)
	assert.Equal(t, []docsign.Address{a}, r.SignaturesCollected)

	// A signature of the previous version cannot be replayed.
	action = SignAction(b)
	stale := sign(created, bob, action)
	_, err = svc.SignWithSignatures(db, created.DocumentHash, action, []*crypto.StdSignature{stale})
	assert.True(t, errors.ErrUnauthorized.Is(err), "unexpected error: %+v", err)

	r, err = svc.SignWithSignatures(db, created.DocumentHash, action,
		[]*crypto.StdSignature{sign(r, bob, action)})
	require.NoError(t, err)
	assert.True(t, r.Executed())
}

type denyAll struct{}

func (denyAll) Evaluate(r *Record, a Action, attestors docsign.AddressSet) Verdict {
	return Verdict{action: a, failures: []*errors.Error{ErrInvalidThreshold}}
}

func TestServiceUsesGivenValidator(t *testing.T) {
	db := store.MemStore()
	a := docsigntest.SequenceAddress(1)

	created, err := NewService(nil).Create(db, newRecord("doc", 1, a))
	require.NoError(t, err)

	svc := NewServiceWithValidator(denyAll{}, nil)
	_, err = svc.Sign(db, created.DocumentHash, SignAction(a), docsign.NewAddressSet(a))
	assert.True(t, ErrInvalidThreshold.Is(err))
}
