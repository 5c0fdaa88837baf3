package docsign

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/docsign/codec"
	"github.com/iov-one/docsign/errors"
	"github.com/zeebo/blake3"
)

// DocumentHashLength is the size of a content-addressed document identifier.
const DocumentHashLength = 32

// DocumentHash is the content-addressed identifier of a document being
// signed. It is opaque to the authorization logic and only copied around.
type DocumentHash [DocumentHashLength]byte

// HashDocument returns the BLAKE3-256 digest of given document content.
func HashDocument(content []byte) DocumentHash {
	return DocumentHash(blake3.Sum256(content))
}

// ParseDocumentHash decodes a hex encoded document hash.
func ParseDocumentHash(enc string) (DocumentHash, error) {
	var h DocumentHash
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return h, errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	return documentHashFromBytes(raw)
}

func documentHashFromBytes(raw []byte) (DocumentHash, error) {
	var h DocumentHash
	if len(raw) != DocumentHashLength {
		return h, errors.ErrInput.Newf("document hash length %d", len(raw))
	}
	copy(h[:], raw)
	return h, nil
}

// IsZero returns true if the hash was never set.
func (h DocumentHash) IsZero() bool {
	return h == DocumentHash{}
}

// Validate returns an error if the hash is not set.
func (h DocumentHash) Validate() error {
	if h.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "document hash")
	}
	return nil
}

func (h DocumentHash) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

func (h DocumentHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *DocumentHash) UnmarshalText(raw []byte) error {
	parsed, err := ParseDocumentHash(string(raw))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (h DocumentHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *DocumentHash) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	return h.UnmarshalText([]byte(enc))
}

// MarshalCBOR encodes the hash as a byte string.
func (h DocumentHash) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(h[:])
}

// UnmarshalCBOR decodes a byte string of exactly DocumentHashLength bytes.
func (h *DocumentHash) UnmarshalCBOR(raw []byte) error {
	var b []byte
	if err := codec.Unmarshal(raw, &b); err != nil {
		return errors.Wrap(err, "document hash")
	}
	parsed, err := documentHashFromBytes(b)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Set implements the flag.Value interface.
func (h *DocumentHash) Set(raw string) error {
	return h.UnmarshalText([]byte(raw))
}
