package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/buffercalc/internal/catalog"
	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/export"
	"github.com/mamadbah2/buffercalc/internal/i18n"
)

type stubExporter struct {
	name string
	err  error
	got  []export.Request
}

func (s *stubExporter) Name() string { return s.name }

func (s *stubExporter) Export(_ context.Context, req export.Request) (*export.Artifact, error) {
	s.got = append(s.got, req)
	if s.err != nil {
		return nil, s.err
	}
	return &export.Artifact{Filename: "out.xlsx", Data: []byte("xlsx")}, nil
}

func newService(exporters ...export.Exporter) *Service {
	svc := NewService(catalog.NewStore(nil, nil, nil), nil, exporters...)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func TestCalculate(t *testing.T) {
	out, err := newService().Calculate(context.Background(), Request{
		Formula: "20 mM Tris, 150 mM NaCl",
		Volume:  "1 L",
		Lang:    i18n.English,
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, out.TotalVolumeML)
	require.Len(t, out.Components, 2)
	require.Len(t, out.Rows, 3)
	assert.Equal(t, models.ResultRow{Name: "Water", Target: "-", Volume: "960.00", Mass: "960.00"}, out.Rows[2])
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"bad volume", Request{Formula: "1 mM DTT", Volume: "lots"}, models.ErrParse},
		{"empty recipe", Request{Formula: "Tris and NaCl", Volume: "1 L"}, models.ErrEmptyRecipe},
		{"mismatch", Request{Formula: "5 % NaCl", Volume: "1 L"}, models.ErrUnitMismatch},
		{"unknown", Request{Formula: "5 mM HEPES", Volume: "1 L"}, models.ErrUnknownReagent},
		{"solid percent", Request{Formula: "5 % Tris", Volume: "1 L", Solids: []string{"Tris"}}, models.ErrUnsupportedUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newService().Calculate(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, out)
		})
	}
}

func TestCalculateHugeNumbersFailCleanly(t *testing.T) {
	huge := "9" + strings.Repeat("0", 307)

	out, err := newService().Calculate(context.Background(), Request{Formula: "20 mM Tris", Volume: huge + " L"})
	require.ErrorIs(t, err, models.ErrParse)
	assert.Nil(t, out)

	out, err = newService().Calculate(context.Background(), Request{Formula: huge + " M Tris", Volume: "1 L"})
	require.ErrorIs(t, err, models.ErrOutOfRange)
	assert.Nil(t, out)
	assert.Contains(t, i18n.Message(err, i18n.English), "Tris")
}

func TestCalculateSolidsOption(t *testing.T) {
	out, err := newService().Calculate(context.Background(), Request{
		Formula: "10 mM Tris",
		Volume:  "1000 mL",
		Solids:  []string{"Tris"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.KindSolid, out.Result.Components[0].Kind)
	assert.Equal(t, "1.2114", out.Rows[0].Mass)
	assert.Equal(t, "-", out.Rows[0].Volume)
}

func TestExport(t *testing.T) {
	stub := &stubExporter{name: "xlsx"}
	svc := newService(stub)

	art, out, err := svc.Export(context.Background(), Request{Formula: "1 mM DTT", Volume: "100 mL"}, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "out.xlsx", art.Filename)
	require.NotNil(t, out)

	require.Len(t, stub.got, 1)
	assert.Equal(t, "1 mM DTT", stub.got[0].Formula)
	assert.Equal(t, 100.0, stub.got[0].TotalVolumeML)
	assert.Same(t, out.Result, stub.got[0].Result)
	assert.Equal(t, 2024, stub.got[0].Now.Year())
}

func TestExportFailureKeepsOutcome(t *testing.T) {
	stub := &stubExporter{name: "sheets", err: errors.New("template missing")}
	svc := newService(stub)

	art, out, err := svc.Export(context.Background(), Request{Formula: "1 mM DTT", Volume: "100 mL"}, "sheets")
	require.ErrorIs(t, err, models.ErrExport)
	assert.Nil(t, art)
	require.NotNil(t, out)
	assert.InDelta(t, 99.9, out.Result.Water().VolumeML, 1e-9)
}

func TestExportUnknownTarget(t *testing.T) {
	_, _, err := newService().Export(context.Background(), Request{Formula: "1 mM DTT", Volume: "100 mL"}, "pdf")
	require.ErrorIs(t, err, ErrUnknownTarget)
}

func TestExportDoesNotExportFailedCalculation(t *testing.T) {
	stub := &stubExporter{name: "xlsx"}

	_, _, err := newService(stub).Export(context.Background(), Request{Formula: "", Volume: "1 L"}, "xlsx")
	require.ErrorIs(t, err, models.ErrEmptyRecipe)
	assert.Empty(t, stub.got)
}
