package docsign_test

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"testing"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/codec"
	"github.com/iov-one/docsign/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hexAddr = "0102030405060708090A0B0C0D0E0F1011121314"

func TestParseAddress(t *testing.T) {
	want := docsign.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	bech, err := want.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		enc      string
		wantErr  *errors.Error
		wantAddr docsign.Address
	}{
		"default decoding": {
			enc:      hexAddr,
			wantAddr: want,
		},
		"lower case hex": {
			enc:      "0102030405060708090a0b0c0d0e0f1011121314",
			wantAddr: want,
		},
		"hex decoding": {
			enc:      "hex:" + hexAddr,
			wantAddr: want,
		},
		"bech32 decoding": {
			enc:      bech,
			wantAddr: want,
		},
		"cond decoding": {
			enc:      "cond:foo/bar/636f6e646974696f6e64617461",
			wantAddr: docsign.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			enc:     "cond:foo/636f6e646974696f6e64617461",
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			enc:     "cond:foo/bar/zzzzz",
			wantErr: errors.ErrInput,
		},
		"invalid bech32": {
			enc:     "bech32:dsig1zzzz",
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			enc:     "foobar:xxx",
			wantErr: errors.ErrType,
		},
		"too short": {
			enc:     "0102",
			wantErr: errors.ErrInput,
		},
		"empty": {
			enc:     "",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			a, err := docsign.ParseAddress(tc.enc)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAddr, a)
		})
	}
}

func TestAddressBech32(t *testing.T) {
	a := docsign.NewAddress([]byte("bech32 test"))
	enc, err := a.Bech32()
	require.NoError(t, err)
	assert.Regexp(t, "^bech32:dsig1", enc)

	back, err := docsign.ParseAddress(enc)
	require.NoError(t, err)
	assert.Equal(t, a, back)
}

func TestAddressJSON(t *testing.T) {
	type holder struct {
		Addr docsign.Address `json:"addr"`
	}

	a := docsign.NewAddress([]byte("json"))
	raw, err := json.Marshal(holder{Addr: a})
	require.NoError(t, err)
	assert.JSONEq(t, `{"addr": "`+a.String()+`"}`, string(raw))

	var got holder
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, a, got.Addr)

	require.NoError(t, json.Unmarshal([]byte(`{"addr": ""}`), &got))
	assert.True(t, got.Addr.IsZero())

	err = json.Unmarshal([]byte(`{"addr": 42}`), &got)
	assert.Error(t, err)
}

func TestAddressValidate(t *testing.T) {
	var zero docsign.Address
	assert.True(t, errors.ErrEmpty.Is(zero.Validate()))
	assert.NoError(t, docsign.NewAddress([]byte("x")).Validate())
}

func TestAddressEquality(t *testing.T) {
	a := docsign.NewAddress([]byte("a"))
	b := docsign.NewAddress([]byte("b"))
	assert.True(t, a.Equals(a))
	assert.False(t, a.Equals(b))

	// Addresses are usable as map keys.
	m := map[docsign.Address]int{a: 1, b: 2}
	assert.Equal(t, 1, m[docsign.NewAddress([]byte("a"))])
}

func TestAddressFlag(t *testing.T) {
	var a docsign.Address
	fl := flag.NewFlagSet("test", flag.ContinueOnError)
	fl.Var(&a, "addr", "")
	require.NoError(t, fl.Parse([]string{"-addr", "hex:" + hexAddr}))
	assert.Equal(t, hexAddr, a.String())
}

func TestAddressCBOR(t *testing.T) {
	cases := map[string]struct {
		raw      []byte
		wantErr  *errors.Error
		wantAddr docsign.Address
	}{
		"exact length": {
			raw:      fromHex(t, hexAddr),
			wantAddr: docsign.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
		},
		"one byte too long": {
			raw:     append(fromHex(t, hexAddr), 0x15),
			wantErr: errors.ErrInput,
		},
		"too short": {
			raw:     []byte{0xaa, 0xbb},
			wantErr: errors.ErrInput,
		},
		"empty": {
			raw:     []byte{},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			enc, err := codec.Marshal(tc.raw)
			require.NoError(t, err)

			var a docsign.Address
			err = codec.Unmarshal(enc, &a)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				assert.True(t, a.IsZero(), "address must not be modified")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAddr, a)

			// Encoding is a plain byte string, same as the input.
			back, err := codec.Marshal(a)
			require.NoError(t, err)
			assert.Equal(t, enc, back)
		})
	}
}

func fromHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
