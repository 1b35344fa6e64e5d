package app

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
)

// ResultSet holds many keys or many values of a query response. Query
// responses carry two of them: one for the keys and one for the values, in
// matching order.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

// Marshal serializes the result set.
func (r *ResultSet) Marshal() ([]byte, error) {
	return codec.Marshal(r)
}

// Unmarshal loads a serialized result set. An empty set serializes to no
// bytes at all.
func (r *ResultSet) Unmarshal(raw []byte) error {
	*r = ResultSet{}
	if len(raw) == 0 {
		return nil
	}
	return codec.Unmarshal(raw, r)
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []savingbank.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []savingbank.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]savingbank.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys for %d values", len(kref), len(vref))
	}
	mods := make([]savingbank.Model, len(kref))
	for i := range mods {
		mods[i] = savingbank.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o savingbank.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
