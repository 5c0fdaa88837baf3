package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/codec"
	"github.com/iov-one/docsign/crypto"
	"github.com/iov-one/docsign/x/contract"
)

// actionFlags registers flags shared by all commands that describe an action
// applied to a record.
type actionFlags struct {
	signer    *docsign.Address
	tag       *string
	attestors *[]docsign.Address
	sigs      *[]string
}

func registerActionFlags(fl *flag.FlagSet) actionFlags {
	return actionFlags{
		signer:    flAddress(fl, "signer", "", "Address of the signer the action is applied for."),
		tag:       fl.String("tag", contract.SignTag, "Action tag."),
		attestors: flAddresses(fl, "attestor", "Address that attested the action. Use many times to declare all attestors."),
		sigs:      flStrings(fl, "sigfile", "Path to a signature file created with the attest command. Signer of each valid signature is an attestor."),
	}
}

func (f actionFlags) action() contract.Action {
	return contract.ParseAction(*f.tag, *f.signer)
}

// attestorSet returns all declared attestors together with identities of
// all signature files, verified against the record.
func (f actionFlags) attestorSet(r *contract.Record) (docsign.AddressSet, error) {
	attestors := docsign.NewAddressSet(*f.attestors...)
	if len(*f.sigs) == 0 {
		return attestors, nil
	}

	sigs := make([]*crypto.StdSignature, 0, len(*f.sigs))
	for _, path := range *f.sigs {
		sig, err := readSignature(path)
		if err != nil {
			return attestors, err
		}
		sigs = append(sigs, sig)
	}
	msg, err := contract.SignBytes(r, f.action())
	if err != nil {
		return attestors, fmt.Errorf("cannot build sign bytes: %s", err)
	}
	signed, err := contract.Attest(msg, sigs)
	if err != nil {
		return attestors, fmt.Errorf("cannot attest: %s", err)
	}
	for _, a := range signed.Sorted() {
		attestors.Add(a)
	}
	return attestors, nil
}

func cmdEvaluate(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Evaluate an action against a record read from the input. The verdict is
written to the output. The command fails if the action is denied.
`)
		fl.PrintDefaults()
	}
	af := registerActionFlags(fl)
	fl.Parse(args)

	r, err := readRecord(input)
	if err != nil {
		return err
	}
	attestors, err := af.attestorSet(r)
	if err != nil {
		return err
	}
	verdict := contract.Evaluate(r, af.action(), attestors)
	if _, err := fmt.Fprintln(output, verdict); err != nil {
		return err
	}
	return verdict.Err()
}

func cmdApplySignature(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Apply an action to a record read from the input. If the action is allowed,
the successor record is written to the output. Nothing is written when the
action is denied.
`)
		fl.PrintDefaults()
	}
	af := registerActionFlags(fl)
	fl.Parse(args)

	r, err := readRecord(input)
	if err != nil {
		return err
	}
	attestors, err := af.attestorSet(r)
	if err != nil {
		return err
	}
	action := af.action()
	if err := contract.Evaluate(r, action, attestors).Err(); err != nil {
		return err
	}
	return writeRecord(output, r.WithSignature(action.Signer))
}

func cmdAttest(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign an action against a record read from the input, using your private key.
The signature is written to the output and can be passed to the evaluate,
apply-signature or db-sign commands using the -sigfile flag.

The signer defaults to the address of the private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use DOCSIGN_PRIV_KEY environment variable to set it.")
		signerFl = flAddress(fl, "signer", "", "Address of the signer the action is applied for.")
		tagFl    = fl.String("tag", contract.SignTag, "Action tag.")
	)
	fl.Parse(args)

	r, err := readRecord(input)
	if err != nil {
		return err
	}
	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	if signerFl.IsZero() {
		*signerFl = key.PublicKey().Address()
	}

	msg, err := contract.SignBytes(r, contract.ParseAction(*tagFl, *signerFl))
	if err != nil {
		return fmt.Errorf("cannot build sign bytes: %s", err)
	}
	sig, err := crypto.SignMessage(key, msg)
	if err != nil {
		return fmt.Errorf("cannot sign: %s", err)
	}
	raw, err := codec.Marshal(sig)
	if err != nil {
		return fmt.Errorf("cannot serialize signature: %s", err)
	}
	_, err = output.Write(raw)
	return err
}
