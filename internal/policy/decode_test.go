package policy

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "data": [
    {
      "resumenComparacion": {
        "agentes": 2,
        "totalPrimaADM": 4500.0,
        "totalPrimaProyectada": 4350.0,
        "totalPrimaDiferencia": 150.0,
        "cantidadPolizas": 3,
        "cantidadPolizasDiferencia": 2,
        "cantidadPolizasDiferenciasMayorA50": 1
      },
      "detalleComparacion": [
        {
          "agente": "A1",
          "subramos": [
            {
              "subramo": "VIDA",
              "polizas": [
                {
                  "numPoliza": "P100",
                  "primaADM": 1500.0,
                  "primaProyectada": {
                    "totalPrima": 1450.0,
                    "cantidadPagos": 12,
                    "detallePagos": [
                      {"idPago": "PAY1", "fechaPago": "2025-01-15", "isPrimerAnio": true, "primaNeta": 120.83},
                      {"idPago": "PAY2", "fechaPago": "2025-02-15", "isPrimerAnio": true, "primaNeta": 120.83}
                    ]
                  },
                  "diferencia": 50.0
                },
                {
                  "numPoliza": "P200",
                  "primaADM": 1000.0,
                  "primaProyectada": null,
                  "diferencia": -75.0
                }
              ]
            }
          ]
        },
        {
          "agente": "A2",
          "subramos": [
            {
              "subramo": "GMM",
              "polizas": [
                {
                  "numPoliza": "P300",
                  "primaADM": 2000.0,
                  "primaProyectada": {
                    "totalPrima": 2000.0,
                    "cantidadPagos": 1,
                    "detallePagos": [
                      {"idPago": "PAY9", "fechaPago": "2025-03-01", "isPrimerAnio": false, "primaNeta": 2000.0}
                    ]
                  },
                  "diferencia": 0.0
                }
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(samplePayload))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Summary.Agents)
	assert.InDelta(t, 4500.0, c.Summary.TotalAdminPremium, 1e-9)
	assert.Equal(t, 3, c.Summary.PolicyCount)
	assert.Equal(t, 1, c.Summary.PoliciesWithDiffOver)
	require.Len(t, c.Detail, 2)
	assert.Equal(t, "A1", c.Detail[0].Agent)
}

func TestDecode_EmptyDataArray(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"data": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty data array")
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"data": [`))
	require.Error(t, err)
}

func TestFlatten(t *testing.T) {
	c, err := Decode(strings.NewReader(samplePayload))
	require.NoError(t, err)

	rows := c.Flatten()
	require.Len(t, rows, 3)

	// Ordered by absolute difference descending: -75, 50, 0.
	assert.Equal(t, "P200", rows[0].PolicyNumber)
	assert.Equal(t, "P100", rows[1].PolicyNumber)
	assert.Equal(t, "P300", rows[2].PolicyNumber)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t,
			math.Abs(rows[i-1].Difference), math.Abs(rows[i].Difference))
	}

	// Agent and subramo context survives flattening.
	assert.Equal(t, "A1", rows[1].Agent)
	assert.Equal(t, "VIDA", rows[1].Subramo)
	assert.Equal(t, "A2", rows[2].Agent)
	assert.Equal(t, "GMM", rows[2].Subramo)

	// Payment details are carried losslessly.
	require.Len(t, rows[1].Payments, 2)
	assert.Equal(t, "PAY1", rows[1].Payments[0].ID)
	assert.Equal(t, "2025-01-15", rows[1].Payments[0].Date)
	assert.True(t, rows[1].Payments[0].FirstYear)
	assert.InDelta(t, 120.83, rows[1].Payments[0].NetPremium, 1e-9)
	assert.Equal(t, 12, rows[1].PaymentCount)
	assert.InDelta(t, 1450.0, rows[1].ProjectedTotal, 1e-9)
}

func TestFlatten_NullProjectedPremium(t *testing.T) {
	c, err := Decode(strings.NewReader(samplePayload))
	require.NoError(t, err)

	rows := c.Flatten()
	row := rows[0] // P200 has primaProyectada: null
	assert.Equal(t, "P200", row.PolicyNumber)
	assert.Zero(t, row.ProjectedTotal)
	assert.Zero(t, row.PaymentCount)
	assert.Empty(t, row.Payments)
}

func TestFindPaymentDetails(t *testing.T) {
	c, err := Decode(strings.NewReader(samplePayload))
	require.NoError(t, err)
	rows := c.Flatten()

	details := FindPaymentDetails(rows, "A1", "VIDA", "P100")
	require.Len(t, details, 2)
	assert.Equal(t, "PAY2", details[1].ID)

	assert.Nil(t, FindPaymentDetails(rows, "A1", "GMM", "P100"), "wrong subramo must not match")
	assert.Nil(t, FindPaymentDetails(rows, "A9", "VIDA", "P100"))
}

func TestFindByPaymentID(t *testing.T) {
	c, err := Decode(strings.NewReader(samplePayload))
	require.NoError(t, err)
	rows := c.Flatten()

	row, detail, ok := FindByPaymentID(rows, "PAY9")
	require.True(t, ok)
	assert.Equal(t, "P300", row.PolicyNumber)
	assert.InDelta(t, 2000.0, detail.NetPremium, 1e-9)

	_, _, ok = FindByPaymentID(rows, "PAY999")
	assert.False(t, ok)
	_, _, ok = FindByPaymentID(rows, "")
	assert.False(t, ok, "empty payment id never matches")
}

func TestAssociate(t *testing.T) {
	c, err := Decode(strings.NewReader(samplePayload))
	require.NoError(t, err)
	rows := c.Flatten()

	row, ok := Associate(rows, "P300", "")
	require.True(t, ok)
	assert.Equal(t, "P300", row.PolicyNumber)

	// Unknown policy number falls back to the payment id.
	row, ok = Associate(rows, "UNKNOWN", "PAY1")
	require.True(t, ok)
	assert.Equal(t, "P100", row.PolicyNumber)

	_, ok = Associate(rows, "UNKNOWN", "PAY999")
	assert.False(t, ok)
	_, ok = Associate(rows, "", "")
	assert.False(t, ok)
}
