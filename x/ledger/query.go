package ledger

import (
	"encoding/json"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
	"github.com/iov-one/savingbank/x/interest"
	"github.com/iov-one/savingbank/x/plan"
)

// RegisterQuery exposes deposits under "/deposits" and "/deposits/plan" and
// the interest preview under "/interest".
func RegisterQuery(qr savingbank.QueryRouter) {
	NewBucket().Register("deposits", qr)
	qr.Register("/interest", interestQuery{plans: plan.NewController()})
}

// InterestRequest is the JSON body of an "/interest" query.
type InterestRequest struct {
	Principal uint64 `json:"principal"`
	PlanID    uint64 `json:"plan_id"`
	TermDays  uint32 `json:"term_days"`
}

// InterestResponse is the JSON value of the single "/interest" result.
type InterestResponse struct {
	InterestRequest
	Interest uint64 `json:"interest"`
}

type interestQuery struct {
	plans plan.Controller
}

var _ savingbank.QueryHandler = interestQuery{}

func (q interestQuery) Query(db savingbank.ReadOnlyKVStore, mod string, data []byte) ([]savingbank.Model, error) {
	if mod != savingbank.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "interest query does not support %q mod", mod)
	}
	var req InterestRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode request: %s", err)
	}
	p, err := q.plans.GetPlan(db, orm.Uint64Key(req.PlanID))
	if err != nil {
		return nil, err
	}
	earned, err := interest.Interest(req.Principal, p, req.TermDays)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(InterestResponse{InterestRequest: req, Interest: earned})
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return []savingbank.Model{savingbank.Pair([]byte("interest"), raw)}, nil
}
