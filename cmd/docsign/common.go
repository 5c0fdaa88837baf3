package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/docsign/codec"
	"github.com/iov-one/docsign/crypto"
	"github.com/iov-one/docsign/x/contract"
	"github.com/tendermint/tendermint/libs/log"
)

// readRecord reads a CBOR serialized record from given input.
func readRecord(input io.Reader) (*contract.Record, error) {
	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("cannot read record: %s", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no input data")
	}
	var r contract.Record
	if err := codec.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("cannot deserialize record: %s", err)
	}
	return &r, nil
}

// writeRecord writes a CBOR serialized record to given output.
func writeRecord(output io.Writer, r *contract.Record) error {
	raw, err := codec.Marshal(r)
	if err != nil {
		return fmt.Errorf("cannot serialize record: %s", err)
	}
	_, err = output.Write(raw)
	return err
}

func writeJSON(output io.Writer, v interface{}) error {
	pretty, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}

// readKey loads a private key from given file.
func readKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	var key crypto.PrivateKey
	if err := key.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("cannot deserialize private key: %s", err)
	}
	return &key, nil
}

// readSignature loads a CBOR serialized signature from given file.
func readSignature(path string) (*crypto.StdSignature, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read signature file: %s", err)
	}
	var sig crypto.StdSignature
	if err := codec.Unmarshal(raw, &sig); err != nil {
		return nil, fmt.Errorf("cannot deserialize signature: %s", err)
	}
	return &sig, nil
}

// newLogger returns a logger writing to stderr. Debug messages are only
// written when debug is set.
func newLogger(debug bool) log.Logger {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	if debug {
		return log.NewFilter(logger, log.AllowDebug())
	}
	return log.NewFilter(logger, log.AllowInfo())
}
