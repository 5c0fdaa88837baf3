package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"math"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/errors"
	"github.com/iov-one/docsign/x/contract"
)

func cmdNewRecord(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a new contract record that collects signatures of the given signers.
The document is identified either by its content (-doc) or its hash (-hash).
Serialized record is written to the output.
`)
		fl.PrintDefaults()
	}
	var (
		docFl       = fl.String("doc", "", "Path to the document file. Its content is hashed.")
		hashFl      = flDocumentHash(fl, "hash", "Hex encoded hash of the document.")
		creatorFl   = flAddress(fl, "creator", "", "Address of the contract creator.")
		signersFl   = flAddresses(fl, "signer", "Address of a required signer. Use many times to declare all signers.")
		thresholdFl = fl.Uint("threshold", 1, "Number of signatures required for the contract to be executed.")
	)
	fl.Parse(args)

	if *thresholdFl > math.MaxUint32 {
		return errors.Wrapf(errors.ErrOverflow, "threshold %d", *thresholdFl)
	}

	switch {
	case *docFl != "" && !hashFl.IsZero():
		flagDie("-doc and -hash cannot be used together")
	case *docFl != "":
		content, err := ioutil.ReadFile(*docFl)
		if err != nil {
			return fmt.Errorf("cannot read document: %s", err)
		}
		*hashFl = docsign.HashDocument(content)
	case hashFl.IsZero():
		flagDie("document must be provided, use -doc or -hash")
	}

	r := &contract.Record{
		DocumentHash:        *hashFl,
		RequiredSigners:     *signersFl,
		SignaturesCollected: []docsign.Address{},
		Threshold:           uint32(*thresholdFl),
		ContractCreator:     *creatorFl,
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid record: %s", err)
	}
	return writeRecord(output, r)
}

func cmdView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Decode and display a record read from the input.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	r, err := readRecord(input)
	if err != nil {
		return err
	}
	return writeJSON(output, recordView{Record: r, Executed: r.Executed(), Remaining: r.Remaining()})
}

// recordView is the human readable representation of a record.
type recordView struct {
	*contract.Record
	Executed  bool              `json:"executed"`
	Remaining []docsign.Address `json:"remaining"`
}
