package savingbank_test

import (
	"testing"

	"github.com/iov-one/savingbank"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	defer func(commit string) { savingbank.GitCommit = commit }(savingbank.GitCommit)

	savingbank.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", savingbank.Version())

	savingbank.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", savingbank.Version())
}
