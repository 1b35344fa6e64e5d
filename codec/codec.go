/*
Package codec holds the binary codec shared by all extensions.

Every persisted model, message and transaction is serialized with go-amino.
Concrete message types are registered once, under a stable name, so that a
transaction can carry any message behind the savingbank.Msg interface.
*/
package codec

import (
	"github.com/iov-one/savingbank/errors"
	amino "github.com/tendermint/go-amino"
)

// Amino is the codec instance used for all state and transaction encoding.
var Amino = amino.NewCodec()

// RegisterInterface declares an interface that concrete types can be
// serialized behind. ptr must be a pointer to the interface, ie (*Msg)(nil).
func RegisterInterface(ptr interface{}) {
	Amino.RegisterInterface(ptr, nil)
}

// RegisterConcrete declares a concrete type under the given name. The name is
// part of the binary format and must never change once released.
func RegisterConcrete(o interface{}, name string) {
	Amino.RegisterConcrete(o, name, nil)
}

// Marshal serializes a value without a length prefix.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := Amino.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot marshal %T: %s", o, err)
	}
	return bz, nil
}

// Unmarshal loads a value serialized with Marshal into ptr.
func Unmarshal(bz []byte, ptr interface{}) error {
	if err := Amino.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot unmarshal %T: %s", ptr, err)
	}
	return nil
}

// MarshalJSON returns the amino JSON representation of a value. Registered
// interface values are wrapped with their type name.
func MarshalJSON(o interface{}) ([]byte, error) {
	bz, err := Amino.MarshalJSON(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot marshal %T to json: %s", o, err)
	}
	return bz, nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func UnmarshalJSON(bz []byte, ptr interface{}) error {
	if err := Amino.UnmarshalJSON(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot unmarshal %T from json: %s", ptr, err)
	}
	return nil
}
