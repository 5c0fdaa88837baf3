package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/docsign"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *docsign.Address {
	var a docsign.Address
	if defaultVal != "" {
		var err error
		a, err = docsign.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q docsign.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flAddresses returns a list of addresses. The flag can be provided many
// times and every occurrence adds an address to the list.
func flAddresses(fl *flag.FlagSet, name, usage string) *[]docsign.Address {
	var addrs addressList
	fl.Var(&addrs, name, usage)
	return (*[]docsign.Address)(&addrs)
}

type addressList []docsign.Address

func (l addressList) String() string {
	s := make([]string, len(l))
	for i, a := range l {
		s[i] = a.String()
	}
	return strings.Join(s, ",")
}

func (l *addressList) Set(raw string) error {
	a, err := docsign.ParseAddress(raw)
	if err != nil {
		return err
	}
	*l = append(*l, a)
	return nil
}

// flDocumentHash returns a document hash flag value, zero if not provided.
func flDocumentHash(fl *flag.FlagSet, name, usage string) *docsign.DocumentHash {
	var h docsign.DocumentHash
	fl.Var(&h, name, usage)
	return &h
}

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b []byte
	if defaultVal != "" {
		var err error
		b, err = hex.DecodeString(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q hex encoded flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fb := (*flagbyte)(&b)
	fl.Var(fb, name, usage)
	return &b
}

type flagbyte []byte

func (b flagbyte) String() string {
	return hex.EncodeToString(b)
}

func (b *flagbyte) Set(raw string) error {
	val, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*b = val
	return nil
}

// flStrings returns a list of strings. The flag can be provided many times.
func flStrings(fl *flag.FlagSet, name, usage string) *[]string {
	var s stringList
	fl.Var(&s, name, usage)
	return (*[]string)(&s)
}

type stringList []string

func (l stringList) String() string {
	return strings.Join(l, ",")
}

func (l *stringList) Set(raw string) error {
	*l = append(*l, raw)
	return nil
}

// flagDie terminates the program when a command line flag cannot be
// processed. It is a variable so that tests can replace it.
var flagDie = func(description string, args ...interface{}) {
	s := fmt.Sprintf(description, args...)
	fmt.Fprintln(os.Stderr, s)
	os.Exit(2)
}
