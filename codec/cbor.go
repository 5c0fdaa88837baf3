/*
Package codec implements the binary encoding of all persisted docsign
values.

Values are encoded using CBOR Core Deterministic Encoding (RFC 8949 §4.2):
sorted map keys, smallest integer encoding, no indefinite-length items. The
same logical value always produces identical bytes, which makes encoded
records safe to hash and to sign.
*/
package codec

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/docsign/errors"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		// Duplicated map keys make a value ambiguous.
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v interface{}) ([]byte, error) {
	raw, err := encMode.Marshal(v)
	if err != nil {
		return nil, errors.WithType(errors.Wrapf(errors.ErrInput, "cbor encode: %s", err), v)
	}
	return raw, nil
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "cbor data")
	}
	if err := decMode.Unmarshal(data, v); err != nil {
		return errors.WithType(errors.Wrapf(errors.ErrInput, "cbor decode: %s", err), v)
	}
	return nil
}
