package contract

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/codec"
	"github.com/iov-one/docsign/docsigntest"
	"github.com/iov-one/docsign/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValidate(t *testing.T) {
	a := docsigntest.SequenceAddress(1)
	b := docsigntest.SequenceAddress(2)
	c := docsigntest.SequenceAddress(3)
	doc := docsign.HashDocument([]byte("doc"))

	tooMany := make([]docsign.Address, maxSignersAllowed+1)
	for i := range tooMany {
		tooMany[i] = docsigntest.SequenceAddress(uint64(i + 10))
	}

	cases := map[string]struct {
		record  *Record
		wantErr *errors.Error
	}{
		"valid": {
			record: &Record{
				DocumentHash:    doc,
				RequiredSigners: addrs(a, b),
				Threshold:       2,
				ContractCreator: a,
			},
		},
		"valid with collected signatures": {
			record: &Record{
				DocumentHash:        doc,
				RequiredSigners:     addrs(a, b),
				SignaturesCollected: addrs(b),
				Threshold:           1,
				ContractCreator:     c,
			},
		},
		"nil record": {
			record:  nil,
			wantErr: errors.ErrEmpty,
		},
		"missing document hash": {
			record: &Record{
				RequiredSigners: addrs(a),
				Threshold:       1,
				ContractCreator: a,
			},
			wantErr: errors.ErrEmpty,
		},
		"missing creator": {
			record: &Record{
				DocumentHash:    doc,
				RequiredSigners: addrs(a),
				Threshold:       1,
			},
			wantErr: errors.ErrEmpty,
		},
		"no required signers": {
			record: &Record{
				DocumentHash:    doc,
				Threshold:       1,
				ContractCreator: a,
			},
			wantErr: errors.ErrModel,
		},
		"too many required signers": {
			record: &Record{
				DocumentHash:    doc,
				RequiredSigners: tooMany,
				Threshold:       1,
				ContractCreator: a,
			},
			wantErr: errors.ErrModel,
		},
		"duplicated required signer": {
			record: &Record{
				DocumentHash:    doc,
				RequiredSigners: addrs(a, b, a),
				Threshold:       1,
				ContractCreator: a,
			},
			wantErr: errors.ErrDuplicate,
		},
		"zero required signer": {
			record: &Record{
				DocumentHash:    doc,
				RequiredSigners: addrs(a, docsign.Address{}),
				Threshold:       1,
				ContractCreator: a,
			},
			wantErr: errors.ErrEmpty,
		},
		"signature not required": {
			record: &Record{
				DocumentHash:        doc,
				RequiredSigners:     addrs(a, b),
				SignaturesCollected: addrs(c),
				Threshold:           1,
				ContractCreator:     a,
			},
			wantErr: errors.ErrModel,
		},
		"duplicated signature": {
			record: &Record{
				DocumentHash:        doc,
				RequiredSigners:     addrs(a, b),
				SignaturesCollected: addrs(a, a),
				Threshold:           1,
				ContractCreator:     a,
			},
			wantErr: errors.ErrDuplicate,
		},
		"zero threshold": {
			record: &Record{
				DocumentHash:    doc,
				RequiredSigners: addrs(a),
				Threshold:       0,
				ContractCreator: a,
			},
			wantErr: errors.ErrModel,
		},
		"threshold greater than signers": {
			record: &Record{
				DocumentHash:    doc,
				RequiredSigners: addrs(a, b),
				Threshold:       3,
				ContractCreator: a,
			},
			wantErr: errors.ErrModel,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestWithSignatureDoesNotModifyReceiver(t *testing.T) {
	a := docsigntest.SequenceAddress(1)
	b := docsigntest.SequenceAddress(2)

	// Capacity larger than length would let an append share memory.
	collected := make([]docsign.Address, 0, 4)
	r := &Record{
		RequiredSigners:     addrs(a, b),
		SignaturesCollected: collected,
		Threshold:           2,
	}

	next := r.WithSignature(a)
	last := next.WithSignature(b)

	assert.Empty(t, r.SignaturesCollected)
	assert.Equal(t, []docsign.Address{a}, next.SignaturesCollected)
	assert.Equal(t, []docsign.Address{a, b}, last.SignaturesCollected)
}

func TestExecutedAndRemaining(t *testing.T) {
	a := docsigntest.SequenceAddress(1)
	b := docsigntest.SequenceAddress(2)
	c := docsigntest.SequenceAddress(3)

	r := &Record{RequiredSigners: addrs(a, b, c), Threshold: 2}
	assert.False(t, r.Executed())
	assert.Equal(t, []docsign.Address{a, b, c}, r.Remaining())

	r = r.WithSignature(b)
	assert.False(t, r.Executed())
	assert.Equal(t, []docsign.Address{a, c}, r.Remaining())

	r = r.WithSignature(c)
	assert.True(t, r.Executed())
	assert.Equal(t, []docsign.Address{a}, r.Remaining())

	broken := &Record{RequiredSigners: addrs(a), Threshold: 0}
	assert.False(t, broken.Executed())
}

func TestRecordEncoding(t *testing.T) {
	a := docsigntest.SequenceAddress(1)
	b := docsigntest.SequenceAddress(2)
	r := &Record{
		DocumentHash:        docsign.HashDocument([]byte("doc")),
		RequiredSigners:     addrs(a, b),
		SignaturesCollected: addrs(b),
		Threshold:           2,
		ContractCreator:     a,
		Version:             3,
	}

	raw, err := codec.Marshal(r)
	require.NoError(t, err)
	again, err := codec.Marshal(r.Copy())
	require.NoError(t, err)
	assert.Equal(t, raw, again, "encoding must be deterministic")

	var decoded Record
	require.NoError(t, codec.Unmarshal(raw, &decoded))
	assert.Equal(t, r, &decoded)

	js, err := json.Marshal(r)
	require.NoError(t, err)
	var fromJSON Record
	require.NoError(t, json.Unmarshal(js, &fromJSON))
	assert.Equal(t, r, &fromJSON)
}

func TestRecordDecodingRejectsWrongLengthIdentities(t *testing.T) {
	signer := docsigntest.SequenceAddress(1)
	doc := docsign.HashDocument([]byte("doc"))
	long := append(signer[:], 0xff)

	cases := map[string]map[int]interface{}{
		"signer one byte too long": {
			1: doc[:],
			2: [][]byte{long},
			4: 1,
			5: signer[:],
		},
		"short signer": {
			1: doc[:],
			2: [][]byte{signer[:], {0xaa, 0xbb}},
			4: 1,
			5: signer[:],
		},
		"creator too long": {
			1: doc[:],
			2: [][]byte{signer[:]},
			4: 1,
			5: long,
		},
		"document hash too long": {
			1: append(doc[:], doc[:8]...),
			2: [][]byte{signer[:]},
			4: 1,
			5: signer[:],
		},
	}

	for testName, fields := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := codec.Marshal(fields)
			require.NoError(t, err)

			var r Record
			err = codec.Unmarshal(raw, &r)
			assert.True(t, errors.ErrInput.Is(err), "unexpected error: %+v", err)
		})
	}
}
