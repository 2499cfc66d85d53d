package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gomlx/simplevec/pkg/elementwise"
	"github.com/gomlx/simplevec/pkg/simd"
	"github.com/gomlx/simplevec/pkg/support/xslices"
	"github.com/google/uuid"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	e := elementwise.New(elementwise.WithCapabilities(simd.ForWidth(simd.WidthScalar)))
	src := xslices.Iota(float32(0), 128)
	out := make([]float32, 128)
	c := benchCase{op: "add one", dts: "f32", bytes: 8, run: func(e *elementwise.Engine, n int) {
		elementwise.ApplyF32(e, src[:n], out[:n], func(x float32) float32 { return x + 1 })
	}}
	rate := measure(c, e, len(src))
	require.Greater(t, rate, 0.0)
	require.Equal(t, float32(1), out[0])
	require.Equal(t, float32(128), out[127])
}

func TestWriteBenchReport(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "simplevec_info")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	report := benchReport{
		ID:     uuid.NewString(),
		Time:   time.Now(),
		Arch:   runtime.GOARCH,
		NumCPU: runtime.NumCPU(),
		Width:  simd.WidthMid.String(),
		Sizes:  []int{16, 32},
		Results: []benchResult{
			{Op: "scale", DTypes: "f16", Width: "mid", Size: 16, ElemsPerSec: 1e9, BytesPerSec: 4e9},
		},
	}
	path := filepath.Join(tmpDir, "report.json")
	require.NoError(t, writeBenchReport(path, report))

	var got benchReport
	require.NoError(t, json.Unmarshal(must.M1(os.ReadFile(path)), &got))
	require.Equal(t, report.ID, got.ID)
	require.True(t, report.Time.Equal(got.Time))
	require.Equal(t, report.Sizes, got.Sizes)
	require.Equal(t, report.Results, got.Results)

	err = writeBenchReport(filepath.Join(tmpDir, "missing", "report.json"), report)
	require.ErrorContains(t, err, "cannot write benchmark report")
}

func TestReportTables(t *testing.T) {
	*flagCaps = true
	*flagDTypes = true
	*flagConvert = true
	require.NotPanics(t, report)
}
