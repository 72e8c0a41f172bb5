package policy

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/goccy/go-json"
)

// Comparison is a decoded comparison payload: the summary block plus the
// raw nested detail, retained for payment-level lookups.
type Comparison struct {
	Summary Summary
	Detail  []AgentDetail
}

// AgentDetail is the nested wire form: one agent with its subramos.
type AgentDetail struct {
	Agent    string          `json:"agente"`
	Subramos []SubramoDetail `json:"subramos"`
}

// SubramoDetail groups the policies of one sub-line.
type SubramoDetail struct {
	Subramo  string         `json:"subramo"`
	Policies []PolicyDetail `json:"polizas"`
}

// PolicyDetail is one policy comparison as returned by the API.
type PolicyDetail struct {
	PolicyNumber string            `json:"numPoliza"`
	AdminPremium float64           `json:"primaADM"`
	Projected    *ProjectedPremium `json:"primaProyectada"`
	Difference   float64           `json:"diferencia"`
}

// ProjectedPremium carries the projected total and its payment schedule.
type ProjectedPremium struct {
	Total        float64      `json:"totalPrima"`
	PaymentCount int          `json:"cantidadPagos"`
	Details      []WirePayment `json:"detallePagos"`
}

// WirePayment is one payment detail on the wire.
type WirePayment struct {
	ID         string  `json:"idPago"`
	Date       string  `json:"fechaPago"`
	FirstYear  bool    `json:"isPrimerAnio"`
	NetPremium float64 `json:"primaNeta"`
}

type wireEnvelope struct {
	Data []struct {
		Summary Summary       `json:"resumenComparacion"`
		Detail  []AgentDetail `json:"detalleComparacion"`
	} `json:"data"`
}

// Decode reads a comparison payload from r. The envelope carries the
// comparison as the first element of its data array; an empty array is an
// error because nothing downstream can work without a detail set.
func Decode(r io.Reader) (*Comparison, error) {
	var env wireEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode comparison payload: %w", err)
	}
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("decode comparison payload: empty data array")
	}
	first := env.Data[0]
	return &Comparison{Summary: first.Summary, Detail: first.Detail}, nil
}

// Flatten converts the nested detail into PolicyRow values, one per
// policy, ordered by absolute difference descending. Lossless: every
// payment detail is carried on its row.
func (c *Comparison) Flatten() []PolicyRow {
	var rows []PolicyRow
	for _, agent := range c.Detail {
		for _, sub := range agent.Subramos {
			for _, pol := range sub.Policies {
				row := PolicyRow{
					Agent:        agent.Agent,
					Subramo:      sub.Subramo,
					PolicyNumber: pol.PolicyNumber,
					AdminPremium: pol.AdminPremium,
					Difference:   pol.Difference,
				}
				if pol.Projected != nil {
					row.ProjectedTotal = pol.Projected.Total
					row.PaymentCount = pol.Projected.PaymentCount
					row.Payments = make([]PaymentDetail, 0, len(pol.Projected.Details))
					for _, p := range pol.Projected.Details {
						row.Payments = append(row.Payments, PaymentDetail{
							ID:         p.ID,
							Date:       p.Date,
							FirstYear:  p.FirstYear,
							NetPremium: p.NetPremium,
						})
					}
				}
				rows = append(rows, row)
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return math.Abs(rows[i].Difference) > math.Abs(rows[j].Difference)
	})
	return rows
}
