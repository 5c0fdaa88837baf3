package docsign_test

import (
	"testing"

	"github.com/iov-one/docsign"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	defer func(c string) { docsign.GitCommit = c }(docsign.GitCommit)

	docsign.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", docsign.Version())

	docsign.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", docsign.Version())
}
