package contract

import (
	"encoding/json"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/errors"
)

// SignTag is the wire tag of the sign action.
const SignTag = "sign"

// ActionKind is the closed set of actions. A tag that is not known decodes
// to ActionUnrecognized, which is never allowed.
type ActionKind uint8

const (
	ActionUnrecognized ActionKind = iota
	ActionSign
)

func (k ActionKind) String() string {
	switch k {
	case ActionSign:
		return SignTag
	default:
		return "unrecognized"
	}
}

// Action is a request to change a record. Sign is the only recognized
// variant: collect one more signature from Signer.
type Action struct {
	Kind ActionKind `json:"-"`
	// Tag is the raw tag the action was decoded from. It is kept for
	// unrecognized actions so that a denial can report it.
	Tag    string          `json:"tag"`
	Signer docsign.Address `json:"signer"`
}

// SignAction returns a request to collect the signature of given signer.
func SignAction(signer docsign.Address) Action {
	return Action{Kind: ActionSign, Tag: SignTag, Signer: signer}
}

// ParseAction maps a wire tag to an action. Tags are compared exactly, any
// tag other than "sign" produces an unrecognized action.
func ParseAction(tag string, signer docsign.Address) Action {
	kind := ActionUnrecognized
	if tag == SignTag {
		kind = ActionSign
	}
	return Action{Kind: kind, Tag: tag, Signer: signer}
}

func (a *Action) UnmarshalJSON(raw []byte) error {
	var wire struct {
		Tag    string          `json:"tag"`
		Signer docsign.Address `json:"signer"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode action: %s", err)
	}
	*a = ParseAction(wire.Tag, wire.Signer)
	return nil
}
