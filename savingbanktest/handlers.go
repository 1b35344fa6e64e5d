package savingbanktest

import "github.com/iov-one/savingbank"

// Handler is a mock implementation of the savingbank.Handler interface that
// returns configured results and counts calls.
type Handler struct {
	checkCall   int
	CheckResult savingbank.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult savingbank.DeliverResult
	DeliverErr    error
}

var _ savingbank.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes a single key value pair on every call and returns the
// configured error afterwards.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ savingbank.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &savingbank.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &savingbank.DeliverResult{}, nil
}

// PanicHandler always panics with the given value.
type PanicHandler struct {
	Reason interface{}
}

var _ savingbank.Handler = PanicHandler{}

func (h PanicHandler) Check(savingbank.Context, savingbank.KVStore, savingbank.Tx) (*savingbank.CheckResult, error) {
	panic(h.Reason)
}

func (h PanicHandler) Deliver(savingbank.Context, savingbank.KVStore, savingbank.Tx) (*savingbank.DeliverResult, error) {
	panic(h.Reason)
}
