package plan

import (
	"context"
	"testing"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/gconf"
	"github.com/iov-one/savingbank/savingbanktest"
	"github.com/iov-one/savingbank/store"
	"github.com/iov-one/savingbank/x/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlers(t *testing.T) {
	var (
		admin    = savingbanktest.NewCondition()
		stranger = savingbanktest.NewCondition()
		one      = savingbanktest.SequenceID(1)
		two      = savingbanktest.SequenceID(2)
	)

	create := &CreatePlanMsg{
		Name:            "Default Plan",
		MinAmount:       100000000,
		MinTermDays:     30,
		MaxTermDays:     365,
		InterestRateBps: 800,
		PenaltyRateBps:  500,
	}
	premium := &CreatePlanMsg{
		Name:            "Premium Plan",
		MinAmount:       1000000000,
		MaxAmount:       100000000000,
		MinTermDays:     90,
		MaxTermDays:     730,
		InterestRateBps: 1200,
		PenaltyRateBps:  300,
	}

	type request struct {
		signer    savingbank.Condition
		msg       savingbank.Msg
		wantErr   *errors.Error
		wantEvent savingbank.Event
	}

	cases := map[string]struct {
		requests []request
		check    func(t *testing.T, db savingbank.KVStore)
	}{
		"admin creates plans with sequential ids": {
			requests: []request{
				{signer: admin, msg: create, wantEvent: Created{ID: 1, Name: "Default Plan"}},
				{signer: admin, msg: premium, wantEvent: Created{ID: 2, Name: "Premium Plan"}},
			},
			check: func(t *testing.T, db savingbank.KVStore) {
				p, err := NewController().GetPlan(db, two)
				require.NoError(t, err)
				assert.Equal(t, "Premium Plan", p.Name)
				assert.Equal(t, uint64(100000000000), p.MaxAmount)
				assert.True(t, p.IsActive)
			},
		},
		"only admin creates": {
			requests: []request{
				{signer: stranger, msg: create, wantErr: errors.ErrNotAdmin},
			},
			check: func(t *testing.T, db savingbank.KVStore) {
				_, err := NewController().GetPlan(db, one)
				assert.True(t, errors.ErrPlanNotFound.Is(err))
			},
		},
		"admin rights are checked before the plan terms": {
			requests: []request{
				{signer: stranger, msg: &CreatePlanMsg{Name: "x", MinTermDays: 0, MaxTermDays: 365, InterestRateBps: 800}, wantErr: errors.ErrNotAdmin},
				{signer: admin, msg: create, wantEvent: Created{ID: 1, Name: "Default Plan"}},
				{signer: stranger, msg: &UpdatePlanMsg{PlanID: one, Name: "x", MinTermDays: 90, MaxTermDays: 30}, wantErr: errors.ErrNotAdmin},
			},
			check: func(t *testing.T, db savingbank.KVStore) {
				p, err := NewController().GetPlan(db, one)
				require.NoError(t, err)
				assert.Equal(t, "Default Plan", p.Name)
			},
		},
		"invalid plan is rejected": {
			requests: []request{
				{signer: admin, msg: &CreatePlanMsg{Name: "x", MinTermDays: 0, MaxTermDays: 365, InterestRateBps: 800}, wantErr: errors.ErrInvalidPlan},
			},
		},
		"admin updates a plan": {
			requests: []request{
				{signer: admin, msg: create, wantEvent: Created{ID: 1, Name: "Default Plan"}},
				{
					signer: admin,
					msg: &UpdatePlanMsg{
						PlanID:          one,
						Name:            "Updated Plan",
						MinAmount:       100000000,
						MinTermDays:     30,
						MaxTermDays:     365,
						InterestRateBps: 1000,
						PenaltyRateBps:  500,
					},
					wantEvent: Updated{ID: 1},
				},
			},
			check: func(t *testing.T, db savingbank.KVStore) {
				p, err := NewController().GetPlan(db, one)
				require.NoError(t, err)
				assert.Equal(t, "Updated Plan", p.Name)
				assert.Equal(t, uint32(1000), p.InterestRateBps)
			},
		},
		"update of unknown plan": {
			requests: []request{
				{
					signer:  admin,
					msg:     &UpdatePlanMsg{PlanID: savingbanktest.SequenceID(99), MinTermDays: 30, MaxTermDays: 365, InterestRateBps: 800},
					wantErr: errors.ErrPlanNotFound,
				},
			},
		},
		"only admin updates": {
			requests: []request{
				{signer: admin, msg: create, wantEvent: Created{ID: 1, Name: "Default Plan"}},
				{
					signer:  stranger,
					msg:     &UpdatePlanMsg{PlanID: one, MinTermDays: 30, MaxTermDays: 365, InterestRateBps: 800},
					wantErr: errors.ErrNotAdmin,
				},
			},
		},
		"admin deactivates and reactivates": {
			requests: []request{
				{signer: admin, msg: create, wantEvent: Created{ID: 1, Name: "Default Plan"}},
				{signer: admin, msg: &SetPlanActiveMsg{PlanID: one, Active: false}, wantEvent: ActiveChanged{ID: 1, Active: false}},
				{signer: admin, msg: &SetPlanActiveMsg{PlanID: one, Active: true}, wantEvent: ActiveChanged{ID: 1, Active: true}},
			},
			check: func(t *testing.T, db savingbank.KVStore) {
				_, err := NewController().ActivePlan(db, one)
				assert.NoError(t, err)
			},
		},
		"only admin toggles": {
			requests: []request{
				{signer: admin, msg: create, wantEvent: Created{ID: 1, Name: "Default Plan"}},
				{signer: stranger, msg: &SetPlanActiveMsg{PlanID: one}, wantErr: errors.ErrNotAdmin},
			},
		},
		"toggle of unknown plan": {
			requests: []request{
				{signer: admin, msg: &SetPlanActiveMsg{PlanID: one}, wantErr: errors.ErrPlanNotFound},
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			auth := &savingbanktest.CtxAuth{Key: "auth"}
			rt := newRouter()
			RegisterRoutes(rt, access.NewController(auth), NewController())

			db := store.MemStore()
			require.NoError(t, gconf.Save(db, "access", &access.Configuration{Admin: admin.Address()}))

			for i, req := range tc.requests {
				ctx := auth.SetConditions(context.Background(), req.signer)
				tx := &savingbanktest.Tx{Msg: req.msg}
				h := rt.handlers[req.msg.Path()]

				cache := db.CacheWrap()
				if _, err := h.Check(ctx, cache, tx); !req.wantErr.Is(err) {
					t.Fatalf("request %d: unexpected check error: %+v", i, err)
				}
				cache.Discard()
				res, err := h.Deliver(ctx, db, tx)
				if !req.wantErr.Is(err) {
					t.Fatalf("request %d: unexpected deliver error: %+v", i, err)
				}
				if req.wantEvent != nil {
					require.Len(t, res.Events, 1)
					assert.Equal(t, req.wantEvent, res.Events[0])
				}
			}
			if tc.check != nil {
				tc.check(t, db)
			}
		})
	}
}

type router struct {
	handlers map[string]savingbank.Handler
}

func newRouter() *router {
	return &router{handlers: make(map[string]savingbank.Handler)}
}

func (r *router) Handle(m savingbank.Msg, h savingbank.Handler) {
	r.handlers[m.Path()] = h
}
