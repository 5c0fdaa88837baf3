package docsign

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/docsign/codec"
	"github.com/iov-one/docsign/errors"
)

// AddressLength is the length of all addresses.
const AddressLength = 20

// Bech32Prefix is the human readable part used when an address is
// represented in bech32 format.
const Bech32Prefix = "dsig"

// Address is the identity of a party, a collision-free one-way digest of a
// Condition. It is a fixed size value so that equality is byte-exact and it
// can be used as a map key.
type Address [AddressLength]byte

// ParseAddress accepts address in a human readable format and decodes it
// into binary representation. Supported formats are
//   - hex, optionally with a "hex:" prefix,
//   - bech32 with a "bech32:" prefix,
//   - condition with a "cond:" prefix.
func ParseAddress(enc string) (Address, error) {
	var a Address

	// If the encoded string starts with a prefix, cut it off and use
	// specified decoding method instead of default one.
	chunks := strings.SplitN(enc, ":", 2)
	format := chunks[0]
	if len(chunks) == 1 {
		format = "hex"
	} else {
		enc = chunks[1]
	}

	switch format {
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return a, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		return addressFromBytes(raw)
	case "bech32":
		hrp, payload, err := bech32.Decode(enc)
		if err != nil {
			return a, errors.Wrapf(errors.ErrInput, "deserialize bech32: %s", err)
		}
		if hrp != Bech32Prefix {
			return a, errors.Wrapf(errors.ErrInput, "unexpected bech32 prefix %q", hrp)
		}
		raw, err := bech32.ConvertBits(payload, 5, 8, false)
		if err != nil {
			return a, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
		}
		return addressFromBytes(raw)
	case "cond":
		var c Condition
		if err := c.deserialize(enc); err != nil {
			return a, err
		}
		if err := c.Validate(); err != nil {
			return a, err
		}
		return c.Address(), nil
	default:
		return a, errors.ErrType.Newf("unknown format %q", chunks[0])
	}
}

func addressFromBytes(raw []byte) (Address, error) {
	var a Address
	if len(raw) != AddressLength {
		return a, errors.ErrInput.Newf("address length %d", len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return a == b
}

// IsZero returns true if no byte of the address is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Validate returns an error if the address is not set.
func (a Address) Validate() error {
	if a.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	return nil
}

// String returns a human readable upper case hex representation.
func (a Address) String() string {
	return strings.ToUpper(hex.EncodeToString(a[:]))
}

// Bech32 returns the bech32 representation of this address, prefixed with
// the format name so that ParseAddress can read it back.
func (a Address) Bech32() (string, error) {
	payload, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	raw, err := bech32.Encode(Bech32Prefix, payload)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "bech32 encode: %s", err)
	}
	return "bech32:" + raw, nil
}

// MarshalText provides a hex representation for text based encoders.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(raw []byte) error {
	parsed, err := ParseAddress(string(raw))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON provides a hex representation for JSON, to override the
// standard byte array encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	// No value zero the address.
	if len(enc) == 0 {
		*a = Address{}
		return nil
	}
	return a.UnmarshalText([]byte(enc))
}

// MarshalCBOR encodes the address as a byte string.
func (a Address) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(a[:])
}

// UnmarshalCBOR decodes a byte string. Only a value of exactly
// AddressLength bytes is accepted.
func (a *Address) UnmarshalCBOR(raw []byte) error {
	var b []byte
	if err := codec.Unmarshal(raw, &b); err != nil {
		return errors.Wrap(err, "address")
	}
	parsed, err := addressFromBytes(b)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Set updates the value of this address. This method implements the
// flag.Value interface so an address can be used as a command line flag.
func (a *Address) Set(raw string) error {
	return a.UnmarshalText([]byte(raw))
}
