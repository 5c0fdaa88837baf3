package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/crypto"
	"github.com/iov-one/docsign/store/iavl"
	"github.com/iov-one/docsign/x/contract"
)

const dbName = "docsign"

func openDB(dir string) (*iavl.CommitStore, error) {
	db, err := iavl.NewCommitStore(dir, dbName)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %s", err)
	}
	return db, nil
}

func cmdDBInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize a database with the content of a genesis file. The genesis
application options can declare the contract configuration and any number of
initial records. This command fails if the database was already initialized.
`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = fl.String("db", defaultDBPath(), "Path to the database directory. You can use DOCSIGN_DB environment variable to set it.")
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis file.")
		debugFl   = fl.Bool("debug", false, "Enable debug logs.")
	)
	fl.Parse(args)

	raw, err := ioutil.ReadFile(*genesisFl)
	if err != nil {
		return fmt.Errorf("cannot read genesis file: %s", err)
	}
	gen, err := docsign.LoadGenesis(raw)
	if err != nil {
		return err
	}

	db, err := openDB(*dbFl)
	if err != nil {
		return err
	}
	defer db.Close()
	if v := db.LatestVersion().Version; v != 0 {
		return fmt.Errorf("database already initialized, version %d", v)
	}

	cache := db.CacheWrap()
	ini := docsign.ChainInitializers(&contract.Initializer{})
	if err := ini.FromGenesis(gen.AppOptions, cache); err != nil {
		cache.Discard()
		return fmt.Errorf("cannot initialize from genesis: %s", err)
	}
	if err := cache.Write(); err != nil {
		return fmt.Errorf("cannot write state: %s", err)
	}
	id, err := db.Commit()
	if err != nil {
		return err
	}
	newLogger(*debugFl).Info("database initialized", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return nil
}

func cmdDBSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Apply an action to a stored record. If the action is allowed, the successor
record is persisted and printed. Nothing is written when the action is denied.

When signature files are given, attestors are the signers of those signatures
and the -attestor flag is ignored.
`)
		fl.PrintDefaults()
	}
	var (
		dbFl    = fl.String("db", defaultDBPath(), "Path to the database directory. You can use DOCSIGN_DB environment variable to set it.")
		docFl   = flDocumentHash(fl, "doc", "Hex encoded hash of the document.")
		debugFl = fl.Bool("debug", false, "Enable debug logs.")
		af      = registerActionFlags(fl)
	)
	fl.Parse(args)

	if docFl.IsZero() {
		flagDie("document hash must be provided")
	}

	db, err := openDB(*dbFl)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := contract.NewService(newLogger(*debugFl))
	cache := db.CacheWrap()

	var r *contract.Record
	if len(*af.sigs) == 0 {
		r, err = svc.Sign(cache, *docFl, af.action(), docsign.NewAddressSet(*af.attestors...))
	} else {
		var sigs []*crypto.StdSignature
		for _, path := range *af.sigs {
			sig, err := readSignature(path)
			if err != nil {
				return err
			}
			sigs = append(sigs, sig)
		}
		r, err = svc.SignWithSignatures(cache, *docFl, af.action(), sigs)
	}
	if err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return fmt.Errorf("cannot write state: %s", err)
	}
	if _, err := db.Commit(); err != nil {
		return err
	}
	return writeJSON(output, recordView{Record: r, Executed: r.Executed(), Remaining: r.Remaining()})
}

func cmdDBStatus(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Display a stored record. Use -raw to get the serialized record, for example to
create a signature with the attest command.
`)
		fl.PrintDefaults()
	}
	var (
		dbFl  = fl.String("db", defaultDBPath(), "Path to the database directory. You can use DOCSIGN_DB environment variable to set it.")
		docFl = flDocumentHash(fl, "doc", "Hex encoded hash of the document.")
		rawFl = fl.Bool("raw", false, "Write the serialized record instead of a summary.")
	)
	fl.Parse(args)

	if docFl.IsZero() {
		flagDie("document hash must be provided")
	}

	db, err := openDB(*dbFl)
	if err != nil {
		return err
	}
	defer db.Close()

	r, executed, err := contract.NewService(nil).Status(db.CacheWrap(), *docFl)
	if err != nil {
		return err
	}
	if *rawFl {
		return writeRecord(output, r)
	}
	return writeJSON(output, recordView{Record: r, Executed: executed, Remaining: r.Remaining()})
}

func cmdDBList(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
List all stored records, one per line: document hash, number of collected and
required signatures, threshold and whether the contract is executed.
`)
		fl.PrintDefaults()
	}
	var (
		dbFl = fl.String("db", defaultDBPath(), "Path to the database directory. You can use DOCSIGN_DB environment variable to set it.")
	)
	fl.Parse(args)

	db, err := openDB(*dbFl)
	if err != nil {
		return err
	}
	defer db.Close()

	return contract.NewRecordBucket().Iterate(db.CacheWrap(), func(r *contract.Record) error {
		_, err := fmt.Fprintf(output, "%s\t%d/%d\t%d\t%v\n",
			r.DocumentHash, len(r.SignaturesCollected), len(r.RequiredSigners), r.Threshold, r.Executed())
		return err
	})
}
