package handlers

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/cmd/savingbankapi/cache"
	"github.com/iov-one/savingbank/cmd/savingbankapi/client"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
	"github.com/iov-one/savingbank/x/certificate"
	"github.com/iov-one/savingbank/x/ledger"
	"github.com/iov-one/savingbank/x/plan"
	"github.com/iov-one/savingbank/x/vault"
)

// BuildVersion is set by build flags.
var BuildVersion = "dev"

// Router returns all API routes.
func Router(sb client.Client, c cache.Cache) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/info", &InfoHandler{Client: sb}).Methods("GET")
	r.Handle("/plans", &PlansHandler{Client: sb}).Methods("GET")
	r.Handle("/plans/{id}", &PlanDetailHandler{Client: sb}).Methods("GET")
	r.Handle("/deposits", &DepositsHandler{Client: sb}).Methods("GET")
	r.Handle("/deposits/{id}", &DepositDetailHandler{Client: sb, Cache: c}).Methods("GET")
	r.Handle("/vault", &VaultHandler{Client: sb}).Methods("GET")
	r.Handle("/certificates", &CertificatesHandler{Client: sb}).Methods("GET")
	r.Handle("/interest", &InterestHandler{Client: sb}).Methods("GET")
	r.NotFoundHandler = &DefaultHandler{}
	return r
}

type InfoHandler struct {
	Client client.Client
}

func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	info, err := client.ABCIInfo(r.Context(), h.Client)
	if err != nil {
		log.Printf("abci info: %s", err)
		JSONErr(w, http.StatusBadGateway, http.StatusText(http.StatusBadGateway))
		return
	}
	JSONResp(w, http.StatusOK, struct {
		BuildVersion string `json:"build_version"`
		App          string `json:"app"`
		AppVersion   string `json:"app_version"`
		Height       int64  `json:"height"`
	}{
		BuildVersion: BuildVersion,
		App:          info.Response.Data,
		AppVersion:   info.Response.Version,
		Height:       info.Response.LastBlockHeight,
	})
}

// planView is a plan with a numeric id.
type planView struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	MinAmount       uint64 `json:"min_amount"`
	MaxAmount       uint64 `json:"max_amount"`
	MinTermDays     uint32 `json:"min_term_days"`
	MaxTermDays     uint32 `json:"max_term_days"`
	InterestRateBps uint32 `json:"interest_rate_bps"`
	PenaltyRateBps  uint32 `json:"penalty_rate_bps"`
	IsActive        bool   `json:"is_active"`
}

func newPlanView(p *plan.SavingPlan) planView {
	return planView{
		ID:              decodeID(p.ID),
		Name:            p.Name,
		MinAmount:       p.MinAmount,
		MaxAmount:       p.MaxAmount,
		MinTermDays:     p.MinTermDays,
		MaxTermDays:     p.MaxTermDays,
		InterestRateBps: p.InterestRateBps,
		PenaltyRateBps:  p.PenaltyRateBps,
		IsActive:        p.IsActive,
	}
}

type PlansHandler struct {
	Client client.Client
}

func (h *PlansHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	models, err := client.ABCIQuery(r.Context(), h.Client, "/plans?"+savingbank.PrefixQueryMod, nil)
	if err != nil {
		serverErr(w, "plans query", err)
		return
	}
	objects := make([]planView, 0, len(models))
	for _, m := range models {
		var p plan.SavingPlan
		if err := p.Unmarshal(m.Value); err != nil {
			serverErr(w, "plans query", err)
			return
		}
		objects = append(objects, newPlanView(&p))
	}
	JSONResp(w, http.StatusOK, struct {
		Objects []planView `json:"objects"`
	}{
		Objects: objects,
	})
}

type PlanDetailHandler struct {
	Client client.Client
}

func (h *PlanDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var p plan.SavingPlan
	switch err := client.ABCIKeyQuery(r.Context(), h.Client, "/plans", orm.Uint64Key(id), &p); {
	case err == nil:
		JSONResp(w, http.StatusOK, newPlanView(&p))
	case errors.ErrNotFound.Is(err):
		JSONErr(w, http.StatusNotFound, "Plan not found.")
	default:
		serverErr(w, "plan query", err)
	}
}

// depositView is a deposit with numeric ids. Owner is the current holder of
// the certificate and is empty once the deposit is closed.
type depositView struct {
	ID              uint64              `json:"id"`
	Owner           savingbank.Address  `json:"owner,omitempty"`
	PlanID          uint64              `json:"plan_id"`
	Amount          uint64              `json:"amount"`
	InterestRateBps uint32              `json:"interest_rate_bps"`
	PenaltyRateBps  uint32              `json:"penalty_rate_bps"`
	TermDays        uint32              `json:"term_days"`
	StartTime       savingbank.UnixTime `json:"start_time"`
	MaturityTime    savingbank.UnixTime `json:"maturity_time"`
	IsClosed        bool                `json:"is_closed"`
}

func newDepositView(d *ledger.Deposit, owner savingbank.Address) depositView {
	return depositView{
		ID:              decodeID(d.ID),
		Owner:           owner,
		PlanID:          decodeID(d.PlanID),
		Amount:          d.Amount,
		InterestRateBps: d.InterestRateBps,
		PenaltyRateBps:  d.PenaltyRateBps,
		TermDays:        d.TermDays,
		StartTime:       d.StartTime,
		MaturityTime:    d.MaturityTime,
		IsClosed:        d.IsClosed,
	}
}

// DepositsHandler lists all deposits, or only those of a single plan when
// the "plan" filter is given. Owners are not resolved for listings.
type DepositsHandler struct {
	Client client.Client
}

func (h *DepositsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		models []savingbank.Model
		err    error
	)
	if s := r.URL.Query().Get("plan"); s != "" {
		planID, perr := strconv.ParseUint(s, 10, 64)
		if perr != nil {
			JSONErr(w, http.StatusBadRequest, "plan must be a numeric plan id.")
			return
		}
		models, err = client.ABCIQuery(r.Context(), h.Client, "/deposits/plan", orm.Uint64Key(planID))
	} else {
		models, err = client.ABCIQuery(r.Context(), h.Client, "/deposits?"+savingbank.PrefixQueryMod, nil)
	}
	if err != nil {
		serverErr(w, "deposits query", err)
		return
	}

	objects := make([]depositView, 0, len(models))
	for _, m := range models {
		var d ledger.Deposit
		if err := d.Unmarshal(m.Value); err != nil {
			serverErr(w, "deposits query", err)
			return
		}
		objects = append(objects, newDepositView(&d, nil))
	}
	JSONResp(w, http.StatusOK, struct {
		Objects []depositView `json:"objects"`
	}{
		Objects: objects,
	})
}

// DepositDetailHandler returns a deposit together with its live owner.
// Closed deposits never change again, so their response is cached.
type DepositDetailHandler struct {
	Client client.Client
	Cache  cache.Cache
}

func (h *DepositDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	cacheKey := fmt.Sprintf("deposit:%d", id)
	if raw, ok := h.Cache.Get(r.Context(), cacheKey); ok {
		JSONResp(w, http.StatusOK, json.RawMessage(raw))
		return
	}

	var d ledger.Deposit
	switch err := client.ABCIKeyQuery(r.Context(), h.Client, "/deposits", orm.Uint64Key(id), &d); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		JSONErr(w, http.StatusNotFound, "Deposit not found.")
		return
	default:
		serverErr(w, "deposit query", err)
		return
	}

	var owner savingbank.Address
	if !d.IsClosed {
		var cert certificate.Certificate
		switch err := client.ABCIKeyQuery(r.Context(), h.Client, "/certificates", d.ID, &cert); {
		case err == nil:
			owner = cert.Owner
		case errors.ErrNotFound.Is(err):
		default:
			serverErr(w, "certificate query", err)
			return
		}
	}

	view := newDepositView(&d, owner)
	if d.IsClosed {
		raw, err := json.Marshal(view)
		if err == nil {
			err = h.Cache.Set(r.Context(), cacheKey, raw)
		}
		if err != nil {
			log.Printf("cache deposit %d: %s", id, err)
		}
	}
	JSONResp(w, http.StatusOK, view)
}

type VaultHandler struct {
	Client client.Client
}

func (h *VaultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var state vault.State
	switch err := client.ABCIKeyQuery(r.Context(), h.Client, "/vault", []byte("state"), &state); {
	case err == nil, errors.ErrNotFound.Is(err):
		JSONResp(w, http.StatusOK, state)
	default:
		serverErr(w, "vault query", err)
	}
}

// CertificatesHandler lists the certificates held by the "owner" address.
type CertificatesHandler struct {
	Client client.Client
}

func (h *CertificatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	owner, err := savingbank.ParseAddress(r.URL.Query().Get("owner"))
	if err != nil || len(owner) == 0 {
		JSONErr(w, http.StatusBadRequest, "owner must be a valid address.")
		return
	}
	models, err := client.ABCIQuery(r.Context(), h.Client, "/certificates/owner", owner)
	if err != nil {
		serverErr(w, "certificates query", err)
		return
	}

	type certificateView struct {
		ID       uint64             `json:"id"`
		Owner    savingbank.Address `json:"owner"`
		Approved savingbank.Address `json:"approved,omitempty"`
	}
	objects := make([]certificateView, 0, len(models))
	for _, m := range models {
		var c certificate.Certificate
		if err := c.Unmarshal(m.Value); err != nil {
			serverErr(w, "certificates query", err)
			return
		}
		objects = append(objects, certificateView{
			ID:       decodeID(m.Key),
			Owner:    c.Owner,
			Approved: c.Approved,
		})
	}
	JSONResp(w, http.StatusOK, struct {
		Objects []certificateView `json:"objects"`
	}{
		Objects: objects,
	})
}

// InterestHandler previews the interest of a deposit held to maturity.
type InterestHandler struct {
	Client client.Client
}

func (h *InterestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var req ledger.InterestRequest
	var err error
	if req.Principal, err = strconv.ParseUint(q.Get("principal"), 10, 64); err != nil {
		JSONErr(w, http.StatusBadRequest, "principal must be a number.")
		return
	}
	if req.PlanID, err = strconv.ParseUint(q.Get("plan_id"), 10, 64); err != nil {
		JSONErr(w, http.StatusBadRequest, "plan_id must be a number.")
		return
	}
	days, err := strconv.ParseUint(q.Get("term_days"), 10, 32)
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "term_days must be a number.")
		return
	}
	req.TermDays = uint32(days)

	data, err := json.Marshal(req)
	if err != nil {
		serverErr(w, "interest request", err)
		return
	}
	models, err := client.ABCIQuery(r.Context(), h.Client, "/interest", data)
	switch {
	case err == nil && len(models) == 1:
		JSONResp(w, http.StatusOK, json.RawMessage(models[0].Value))
	case err == nil:
		serverErr(w, "interest query", errors.Wrapf(errors.ErrState, "%d results", len(models)))
	case errors.ErrPlanNotFound.Is(err):
		JSONErr(w, http.StatusNotFound, "Plan not found.")
	case errors.ErrInvalidAmount.Is(err), errors.ErrOverflow.Is(err), errors.ErrInput.Is(err):
		JSONErr(w, http.StatusBadRequest, err.Error())
	default:
		serverErr(w, "interest query", err)
	}
}

type DefaultHandler struct{}

func (h *DefaultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	JSONErr(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// pathID reads the numeric "id" route variable. On failure the response is
// already written.
func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		JSONErr(w, http.StatusBadRequest, "id must be a positive number.")
		return 0, false
	}
	return id, true
}

// decodeID returns the sequence value kept in the last 8 bytes of a key or id.
func decodeID(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b[len(b)-8:])
}

func serverErr(w http.ResponseWriter, what string, err error) {
	log.Printf("%s: %s", what, err)
	JSONErr(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// JSONResp write content as JSON encoded response.
func JSONResp(w http.ResponseWriter, code int, content interface{}) {
	b, err := json.MarshalIndent(content, "", "\t")
	if err != nil {
		log.Printf("cannot JSON serialize response: %s", err)
		code = http.StatusInternalServerError
		b = []byte(`{"errors":["Internal Server Error"]}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// JSONErr write single error as JSON encoded response.
func JSONErr(w http.ResponseWriter, code int, errText string) {
	JSONErrs(w, code, []string{errText})
}

// JSONErrs write multiple errors as JSON encoded response.
func JSONErrs(w http.ResponseWriter, code int, errs []string) {
	resp := struct {
		Errors []string `json:"errors"`
	}{
		Errors: errs,
	}
	JSONResp(w, code, resp)
}
