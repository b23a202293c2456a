package investment

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/fetch"
	"github.com/trezcool/masomo-dashboard/core/query"
)

const LoaderName = "investment"

const cacheKey = "all"

var ErrInactiveMember = errors.New("member is not active")

type (
	Repository interface {
		Members() []Member
		Payments() []Payment
	}

	Service struct {
		repo        Repository
		loader      *fetch.Loader[Ledger]
		log         core.Logger
		submitDelay time.Duration
	}
)

func NewService(repo Repository, logger core.Logger, conf *core.Config, metrics *fetch.Metrics) (*Service, error) {
	svc := &Service{repo: repo, log: logger, submitDelay: conf.Submit.Delay}
	loader, err := fetch.NewLoader(LoaderName, svc.fetch, fetch.Options{
		Latency:   conf.Fetch.InvestmentLatency,
		CacheSize: conf.Fetch.CacheSize,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, err
	}
	svc.loader = loader
	return svc, nil
}

func (svc *Service) fetch(context.Context, string) (Ledger, error) {
	return NewLedger(svc.repo.Members(), svc.repo.Payments()), nil
}

func (svc *Service) Load(ctx context.Context) (Ledger, error) {
	return svc.loader.Get(ctx, cacheKey)
}

func (svc *Service) State() fetch.State[Ledger] {
	return svc.loader.State(cacheKey)
}

func (svc *Service) Refresh(ctx context.Context) error {
	_, err := svc.loader.Refetch(ctx, cacheKey)
	return err
}

func (svc *Service) Overview(ctx context.Context) (Overview, error) {
	l, err := svc.Load(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overall(l), nil
}

func (svc *Service) QueryPayments(ctx context.Context, req query.Request) (PaymentsView, error) {
	l, err := svc.Load(ctx)
	if err != nil {
		return PaymentsView{}, err
	}
	return DerivePayments(l, req)
}

func (svc *Service) QueryMembers(ctx context.Context, req query.Request) (MembersView, error) {
	l, err := svc.Load(ctx)
	if err != nil {
		return MembersView{}, err
	}
	return DeriveMembers(l, req)
}

func (svc *Service) ExportPayments(ctx context.Context, req query.Request) ([]byte, error) {
	view, err := svc.QueryPayments(ctx, req)
	if err != nil {
		return nil, err
	}
	return csvexport.Render(Columns, view.Items)
}

// RecordPayment acknowledges a validated payment. Nothing is persisted.
func (svc *Service) RecordPayment(ctx context.Context, np NewPayment) (core.Acknowledgement, error) {
	l, err := svc.Load(ctx)
	if err != nil {
		return core.Acknowledgement{}, err
	}
	m, ok := l.Member(np.MemberID)
	if !ok {
		err := core.NewNotFoundError("member", np.MemberID)
		return core.Acknowledgement{}, core.NewValidationError(err, core.FieldError{Field: "member_id", Error: err.Error()})
	}
	if !m.Active {
		return core.Acknowledgement{}, core.NewValidationError(ErrInactiveMember, core.FieldError{Field: "member_id", Error: ErrInactiveMember.Error()})
	}
	if err := core.Wait(ctx, svc.submitDelay); err != nil {
		return core.Acknowledgement{}, err
	}
	svc.log.Info("payment accepted", map[string]interface{}{
		"member": m.ID,
		"type":   np.Type,
		"amount": np.Amount,
		"date":   np.Date,
	})
	return core.NewAcknowledgement(
		"investment.record_payment",
		fmt.Sprintf("%s of %.2f for %s accepted", np.Type, np.Amount, m.Name),
	), nil
}
