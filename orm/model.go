package orm

import (
	"github.com/iov-one/savingbank"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	savingbank.Persistent
	Validate() error
}
