package investment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/query"
)

type PaymentType string

const (
	Income  PaymentType = "income"
	Outcome PaymentType = "outcome"
)

var PaymentTypes = []PaymentType{Income, Outcome}

func ParsePaymentType(s string) (PaymentType, error) {
	return core.ParseEnum("type", s, PaymentTypes)
}

type Member struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	TotalContribution float64   `json:"total_contribution"`
	Active            bool      `json:"active"`
	JoinedAt          time.Time `json:"joined_at"` // UTC
}

type Payment struct {
	ID          string      `json:"id"`
	MemberID    string      `json:"member_id"`
	Type        PaymentType `json:"type"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"` // UTC
}

// Ledger is the loaded fund: members, payments and the member lookup.
type Ledger struct {
	Members  []Member
	Payments []Payment
	index    query.Index[string, Member]
}

func NewLedger(members []Member, payments []Payment) Ledger {
	return Ledger{
		Members:  members,
		Payments: payments,
		index:    query.NewIndex(members, func(m Member) string { return m.ID }),
	}
}

func (l Ledger) Member(id string) (Member, bool) {
	return l.index.Get(id)
}

// PaymentRow is a payment joined with the name of its member.
type PaymentRow struct {
	Payment    Payment `json:"payment"`
	MemberName string  `json:"member_name"`
}

// Rows joins every payment with its member. Payments of unknown members keep
// an empty member name.
func (l Ledger) Rows() []PaymentRow {
	rows := make([]PaymentRow, 0, len(l.Payments))
	for _, p := range l.Payments {
		row := PaymentRow{Payment: p}
		if m, ok := l.Member(p.MemberID); ok {
			row.MemberName = m.Name
		}
		rows = append(rows, row)
	}
	return rows
}

// NewPayment contains information needed to record a fund payment.
type NewPayment struct {
	MemberID    string  `json:"member_id" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=income outcome"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description" validate:"required,max=200"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.MemberID = core.CleanString(np.MemberID)
	np.Type = core.CleanString(np.Type, true /* lower */)
	np.Description = core.CleanString(np.Description)
	np.Date = core.CleanString(np.Date)
	return validate.Struct(np)
}
