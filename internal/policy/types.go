package policy

// PaymentDetail is one scheduled payment attached to a policy.
// ID is usable as a secondary matching key for premium adjustments.
type PaymentDetail struct {
	ID         string
	Date       string
	FirstYear  bool
	NetPremium float64
}

// PolicyRow is one flattened comparison row. Identity for adjustment
// matching is the (Agent, Subramo, PolicyNumber) triple.
type PolicyRow struct {
	Agent          string
	Subramo        string
	PolicyNumber   string
	AdminPremium   float64
	ProjectedTotal float64
	PaymentCount   int
	Payments       []PaymentDetail
	Difference     float64
}

// Display column names, in grid order. Payment details are intentionally
// not a column; they are reachable through the Payments slice.
const (
	ColAgent        = "Agente"
	ColSubramo      = "Subramo"
	ColPolicyNumber = "Núm. Póliza"
	ColAdminPremium = "Prima ADM"
	ColTotal        = "Total Prima"
	ColPaymentCount = "Cantidad Pagos"
	ColDetailCount  = "Detalles Pagos"
	ColDifference   = "Diferencia"
)

// Columns returns the displayed column names in grid order.
func Columns() []string {
	return []string{
		ColAgent, ColSubramo, ColPolicyNumber, ColAdminPremium,
		ColTotal, ColPaymentCount, ColDetailCount, ColDifference,
	}
}

// Cell returns the display string for a column. Monetary columns are
// pre-formatted ("$1,234.56"); the view's comparator parses them back
// when sorting. Unknown columns return "".
func (r PolicyRow) Cell(column string) string {
	switch column {
	case ColAgent:
		return r.Agent
	case ColSubramo:
		return r.Subramo
	case ColPolicyNumber:
		return r.PolicyNumber
	case ColAdminPremium:
		return FormatMoney(r.AdminPremium)
	case ColTotal:
		return FormatMoney(r.ProjectedTotal)
	case ColPaymentCount:
		return FormatCount(r.PaymentCount)
	case ColDetailCount:
		return FormatCount(len(r.Payments))
	case ColDifference:
		return FormatSignedMoney(r.Difference)
	default:
		return ""
	}
}

// Summary mirrors the API's comparison summary block.
type Summary struct {
	Agents               int     `json:"agentes"`
	TotalAdminPremium    float64 `json:"totalPrimaADM"`
	TotalProjected       float64 `json:"totalPrimaProyectada"`
	TotalDifference      float64 `json:"totalPrimaDiferencia"`
	PolicyCount          int     `json:"cantidadPolizas"`
	PoliciesWithDiff     int     `json:"cantidadPolizasDiferencia"`
	PoliciesWithDiffOver int     `json:"cantidadPolizasDiferenciasMayorA50"`
}
