package investment

import (
	"strconv"
	"time"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/csvexport"
	"github.com/trezcool/masomo-dashboard/core/query"
)

// Filter keys
const (
	FilterType   = "type"
	FilterMember = "member"
	FilterActive = "active"
)

var PaymentPolicy = query.Policy[PaymentRow]{
	SearchFields: []query.Field[PaymentRow]{
		func(r PaymentRow) string { return r.Payment.Description },
		func(r PaymentRow) string { return r.MemberName },
	},
	Categories: map[string]query.Field[PaymentRow]{
		FilterType:   func(r PaymentRow) string { return string(r.Payment.Type) },
		FilterMember: func(r PaymentRow) string { return r.Payment.MemberID },
	},
	Values: map[string][]string{FilterType: core.EnumStrings(PaymentTypes)},
	Date:   func(r PaymentRow) time.Time { return r.Payment.Date },
}

var MemberPolicy = query.Policy[Member]{
	SearchFields: []query.Field[Member]{
		func(m Member) string { return m.Name },
		func(m Member) string { return m.Email },
	},
	Categories: map[string]query.Field[Member]{
		FilterActive: func(m Member) string { return strconv.FormatBool(m.Active) },
	},
	Values: map[string][]string{FilterActive: {"true", "false"}},
	Date: func(m Member) time.Time { return m.JoinedAt },
}

var paymentComparators = map[string]query.Comparator[PaymentRow]{
	"date":   func(a, b PaymentRow) int { return a.Payment.Date.Compare(b.Payment.Date) },
	"amount": func(a, b PaymentRow) int { return query.CompareNumbers(a.Payment.Amount, b.Payment.Amount) },
}

var memberComparators = map[string]query.Comparator[Member]{
	"name":               func(a, b Member) int { return query.CompareStrings(a.Name, b.Name) },
	"total_contribution": func(a, b Member) int { return query.CompareNumbers(a.TotalContribution, b.TotalContribution) },
}

var Columns = []csvexport.Column[PaymentRow]{
	{Header: "Date", Value: func(r PaymentRow) string { return csvexport.Date(r.Payment.Date) }},
	{Header: "Member", Value: func(r PaymentRow) string { return r.MemberName }},
	{Header: "Type", Value: func(r PaymentRow) string { return string(r.Payment.Type) }},
	{Header: "Amount", Value: func(r PaymentRow) string { return csvexport.Money(r.Payment.Amount) }},
}

type Summary struct {
	Income             float64 `json:"income"`
	Outcome            float64 `json:"outcome"`
	Profit             float64 `json:"profit"`
	Payments           int     `json:"payments"`
	Members            int     `json:"members"`
	ActiveMembers      int     `json:"active_members"`
	TotalContributions float64 `json:"total_contributions"`
}

// Summarize aggregates members and payments; Profit is Income minus Outcome.
func Summarize(members []Member, rows []PaymentRow) Summary {
	sum := Summary{
		Members:            len(members),
		ActiveMembers:      query.Count(members, func(m Member) bool { return m.Active }),
		TotalContributions: query.Sum(members, func(m Member) float64 { return m.TotalContribution }),
	}
	for _, r := range rows {
		sum.Payments++
		switch r.Payment.Type {
		case Income:
			sum.Income += r.Payment.Amount
		case Outcome:
			sum.Outcome += r.Payment.Amount
		}
	}
	sum.Income = query.Round(sum.Income, 2)
	sum.Outcome = query.Round(sum.Outcome, 2)
	sum.Profit = query.Round(sum.Income-sum.Outcome, 2)
	sum.TotalContributions = query.Round(sum.TotalContributions, 2)
	return sum
}

type MemberBreakdown struct {
	MemberID string  `json:"member_id"`
	Member   string  `json:"member"`
	Payments int     `json:"payments"`
	Income   float64 `json:"income"`
	Outcome  float64 `json:"outcome"`
	Net      float64 `json:"net"`
}

// ByMember breaks payment rows down per member, in first-seen order.
func ByMember(rows []PaymentRow) []MemberBreakdown {
	groups := query.GroupBy(rows, func(r PaymentRow) string { return r.Payment.MemberID })
	out := make([]MemberBreakdown, 0, len(groups))
	for _, g := range groups {
		sum := Summarize(nil, g.Items)
		out = append(out, MemberBreakdown{
			MemberID: g.Key,
			Member:   g.Items[0].MemberName,
			Payments: sum.Payments,
			Income:   sum.Income,
			Outcome:  sum.Outcome,
			Net:      sum.Profit,
		})
	}
	return out
}

type PaymentsView struct {
	Items   []PaymentRow      `json:"items"`
	Summary Summary           `json:"summary"`
	Groups  []MemberBreakdown `json:"groups"`
}

// DerivePayments filters payment rows. The summary's member figures cover only
// the members the filtered payments reference.
func DerivePayments(l Ledger, req query.Request) (PaymentsView, error) {
	if err := PaymentPolicy.Validate(req.Criteria); err != nil {
		return PaymentsView{}, err
	}
	items, err := query.Sort(query.Filter(l.Rows(), PaymentPolicy, req.Criteria), req.Ordering, paymentComparators)
	if err != nil {
		return PaymentsView{}, err
	}
	referenced := query.NewIndex(items, func(r PaymentRow) string { return r.Payment.MemberID })
	members := query.Where(l.Members, func(m Member) bool {
		_, ok := referenced.Get(m.ID)
		return ok
	})
	return PaymentsView{
		Items:   items,
		Summary: Summarize(members, items),
		Groups:  ByMember(items),
	}, nil
}

type MembersView struct {
	Items   []Member `json:"items"`
	Summary Summary  `json:"summary"`
}

// DeriveMembers filters members; the summary covers their payments only.
func DeriveMembers(l Ledger, req query.Request) (MembersView, error) {
	if err := MemberPolicy.Validate(req.Criteria); err != nil {
		return MembersView{}, err
	}
	items, err := query.Sort(query.Filter(l.Members, MemberPolicy, req.Criteria), req.Ordering, memberComparators)
	if err != nil {
		return MembersView{}, err
	}
	kept := query.NewIndex(items, func(m Member) string { return m.ID })
	rows := query.Where(l.Rows(), func(r PaymentRow) bool {
		_, ok := kept.Get(r.Payment.MemberID)
		return ok
	})
	return MembersView{Items: items, Summary: Summarize(items, rows)}, nil
}

// Overview is the fund-level summary with its per-member breakdown.
type Overview struct {
	Summary Summary           `json:"summary"`
	Groups  []MemberBreakdown `json:"groups"`
}

func Overall(l Ledger) Overview {
	rows := l.Rows()
	return Overview{Summary: Summarize(l.Members, rows), Groups: ByMember(rows)}
}
