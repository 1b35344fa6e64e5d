package savingbanktest

import "github.com/iov-one/savingbank"

// Decorator is a mock implementation of the savingbank.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ savingbank.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx, next savingbank.Checker) (*savingbank.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return &savingbank.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx, next savingbank.Deliverer) (*savingbank.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return &savingbank.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

func Decorate(h savingbank.Handler, d savingbank.Decorator) savingbank.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn savingbank.Handler
	dc savingbank.Decorator
}

var _ savingbank.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx) (*savingbank.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
