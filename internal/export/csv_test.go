package export

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdielcoder/int-bonos/internal/policy"
	"github.com/Abdielcoder/int-bonos/internal/store"
	"github.com/Abdielcoder/int-bonos/internal/view"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "export_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, &store.AdjustmentRecord{
		Agent: "A1", Subramo: "VIDA", PolicyNumber: "P100",
		Kind: store.KindPrima, Responsible: "evelyn",
		PaymentID: "PAY1", TargetDate: "2025-04-01",
	}))
	require.NoError(t, s.Save(ctx, &store.AdjustmentRecord{
		Agent: "A2", Subramo: "GMM", PolicyNumber: "P300",
		Kind: store.KindNuevoNegocio, Responsible: "evelyn",
		NewBusinessPolicy: "P300",
	}))
	return s
}

func sampleRows() []policy.PolicyRow {
	return []policy.PolicyRow{
		{
			Agent: "A1", Subramo: "VIDA", PolicyNumber: "P100",
			AdminPremium: 1500, ProjectedTotal: 1450, PaymentCount: 12,
			Payments:   []policy.PaymentDetail{{ID: "PAY1"}, {ID: "PAY2"}},
			Difference: 50,
		},
		{
			Agent: "A2", Subramo: "GMM", PolicyNumber: "P200",
			AdminPremium: 800, ProjectedTotal: 800, PaymentCount: 1,
			Payments:   []policy.PaymentDetail{{ID: "PAY5"}},
			Difference: 0,
		},
		{
			Agent: "A2", Subramo: "GMM", PolicyNumber: "P300",
			AdminPremium: 2000, ProjectedTotal: 1900.5, PaymentCount: 4,
			Difference: -99.5,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	s := seededStore(t)
	v := view.New()
	v.Load(sampleRows(), policy.Columns())
	// A page size smaller than the set forces the export to walk pages.
	v.SetPageSize(2)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(context.Background(), &buf, v, s))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export_all", buf.Bytes())
}

func TestWriteCSV_RespectsFilter(t *testing.T) {
	s := seededStore(t)
	v := view.New()
	v.Load(sampleRows(), policy.Columns())
	v.SetFilter("GMM")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(context.Background(), &buf, v, s))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3, "header plus the two GMM rows")
	assert.Contains(t, lines[1], "P200")
	assert.Contains(t, lines[2], "P300")
	assert.NotContains(t, buf.String(), "P100")
}

func TestWriteCSV_RestoresViewToFirstPage(t *testing.T) {
	s := seededStore(t)
	v := view.New()
	v.Load(sampleRows(), policy.Columns())
	v.SetPageSize(1)
	v.GotoPage(3)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(context.Background(), &buf, v, s))
	assert.Equal(t, 1, v.Info().Page)
}

func TestWriteCSV_EmptyViewWritesHeaderOnly(t *testing.T) {
	s := newTestStore(t)
	v := view.New()
	v.Load(nil, policy.Columns())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(context.Background(), &buf, v, s))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], overlayColumn))
}
