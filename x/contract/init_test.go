package contract

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/docsigntest"
	"github.com/iov-one/docsign/errors"
	"github.com/iov-one/docsign/gconf"
	"github.com/iov-one/docsign/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	a := docsigntest.SequenceAddress(1)
	b := docsigntest.SequenceAddress(2)
	doc := docsign.HashDocument([]byte("genesis doc"))

	genesis := fmt.Sprintf(`{
		"conf": {
			"contract": {"max_signers": 5}
		},
		"contract": [
			{
				"document_hash": %q,
				"required_signers": [%q, %q],
				"signatures_collected": [%q],
				"threshold": 2,
				"contract_creator": %q
			}
		]
	}`, doc, a, b, b, a)

	var opts docsign.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	var conf Configuration
	require.NoError(t, gconf.Load(db, ConfigPackage, &conf))
	assert.Equal(t, uint32(5), conf.MaxSigners)

	r, err := NewRecordBucket().Get(db, doc)
	require.NoError(t, err)
	assert.Equal(t, []docsign.Address{a, b}, r.RequiredSigners)
	assert.Equal(t, []docsign.Address{b}, r.SignaturesCollected)
	assert.Equal(t, uint32(2), r.Threshold)
	assert.Equal(t, a, r.ContractCreator)
	assert.Equal(t, uint64(1), r.Version)
}

func TestGenesisWithoutConfiguration(t *testing.T) {
	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(docsign.Options{}, db))

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfiguration(), conf)
}

func TestGenesisInvalidRecord(t *testing.T) {
	a := docsigntest.SequenceAddress(1)
	genesis := fmt.Sprintf(`{
		"contract": [
			{
				"document_hash": %q,
				"required_signers": [%q],
				"threshold": 0,
				"contract_creator": %q
			}
		]
	}`, docsign.HashDocument([]byte("x")), a, a)

	var opts docsign.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	var ini Initializer
	err := ini.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrModel.Is(err), "unexpected error: %+v", err)
}
