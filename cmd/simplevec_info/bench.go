package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/simplevec/pkg/core/dtypes/bfloat16"
	"github.com/gomlx/simplevec/pkg/elementwise"
	"github.com/gomlx/simplevec/pkg/simd"
	"github.com/gomlx/simplevec/pkg/support/xslices"
	"github.com/gomlx/simplevec/pkg/support/xsync"
	"github.com/google/uuid"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// benchCase is one operation to measure. The input and output buffers are
// captured by run, pre-allocated at the largest benchmarked size and re-sliced
// to each measured size.
type benchCase struct {
	op    string
	dts   string // dtypes read and written, e.g. "f16" or "f16→f32".
	bytes int    // bytes read plus written per element.

	// engineless operations dispatch on the process-wide probe instead of the
	// engine, so they are measured only at the detected width.
	engineless bool

	run func(e *elementwise.Engine, n int)
}

type benchResult struct {
	Op          string  `json:"op"`
	DTypes      string  `json:"dtypes"`
	Width       string  `json:"width"`
	Size        int     `json:"size"`
	ElemsPerSec float64 `json:"elems_per_sec"`
	BytesPerSec float64 `json:"bytes_per_sec"`
}

type benchReport struct {
	ID          string        `json:"id"`
	Time        time.Time     `json:"time"`
	Arch        string        `json:"arch"`
	NumCPU      int           `json:"num_cpu"`
	Width       string        `json:"width"`
	Sizes       []int         `json:"sizes"`
	Interrupted bool          `json:"interrupted,omitempty"`
	Results     []benchResult `json:"results"`
}

// minMeasure is how long each measurement keeps repeating the operation.
const minMeasure = 50 * time.Millisecond

func bench(caps simd.Capabilities) {
	sizeList := slices.Clone(*flagSizes)
	if len(sizeList) == 0 {
		klog.Errorf("-bench needs at least one size in -sizes.")
		os.Exit(1)
	}
	slices.Sort(sizeList)
	if sizeList[0] <= 0 {
		klog.Errorf("-sizes must be positive, got %d.", sizeList[0])
		os.Exit(1)
	}
	maxSize := xslices.Last(sizeList)

	// Inputs: a repeating float ramp that stays inside the float16 range, and
	// integer ramps that exercise both the saturated and the exact paths.
	src32 := make([]float32, maxSize)
	for ii := range src32 {
		src32[ii] = float32(ii&4095) * 0.25
	}
	src16 := xslices.Map(src32, simd.EncodeF16)
	srcBF := xslices.Map(src32, bfloat16.FromFloat32)
	work16 := xslices.Copy(src16)
	srcI16a := xslices.Iota(int16(1), maxSize)
	srcI16b := xslices.SliceWithValue(maxSize, int16(3))
	srcI32a := xslices.Iota(int32(-1_000_000), maxSize)
	srcI32b := xslices.SliceWithValue(maxSize, int32(2025))

	out16 := xslices.SliceWithValue(maxSize, src16[0])
	outBF := xslices.SliceWithValue(maxSize, srcBF[0])
	out32 := make([]float32, maxSize)
	out64 := make([]float64, maxSize)
	outI16 := make([]int16, maxSize)
	outI32 := make([]int32, maxSize)

	// Multiplying by 1+1e-7 is exact in float16 and bfloat16, so the in-place
	// case does not drift across repetitions.
	scale := func(x float32) float32 { return x * (1 + 1e-7) }
	identity := func(x float32) float32 { return x }

	cases := []benchCase{
		{op: "scale", dts: "f16", bytes: 4, run: func(e *elementwise.Engine, n int) {
			elementwise.ApplyF32(e, src16[:n], out16[:n], scale)
		}},
		{op: "scale", dts: "bf16", bytes: 4, run: func(e *elementwise.Engine, n int) {
			elementwise.ApplyF32(e, srcBF[:n], outBF[:n], scale)
		}},
		{op: "scale", dts: "f32", bytes: 8, run: func(e *elementwise.Engine, n int) {
			elementwise.ApplyF32(e, src32[:n], out32[:n], scale)
		}},
		{op: "scale in-place", dts: "f16", bytes: 4, run: func(e *elementwise.Engine, n int) {
			elementwise.ApplyF32InPlace(e, work16[:n], scale)
		}},
		{op: "widen", dts: "f16→f32", bytes: 6, run: func(e *elementwise.Engine, n int) {
			elementwise.ApplyF32(e, src16[:n], out32[:n], identity)
		}},
		{op: "narrow", dts: "f32→f16", bytes: 6, run: func(e *elementwise.Engine, n int) {
			elementwise.ApplyF32(e, src32[:n], out16[:n], identity)
		}},
		{op: "widen", dts: "bf16→f32", bytes: 6, run: func(e *elementwise.Engine, n int) {
			elementwise.ApplyF32(e, srcBF[:n], out32[:n], identity)
		}},
		{op: "saturated add", dts: "int16", bytes: 6, run: func(e *elementwise.Engine, n int) {
			elementwise.SaturatedAddSlices(e, srcI16a[:n], srcI16b[:n], outI16[:n])
		}},
		{op: "saturated mul", dts: "int32", bytes: 12, run: func(e *elementwise.Engine, n int) {
			elementwise.SaturatedMulSlices(e, srcI32a[:n], srcI32b[:n], outI32[:n])
		}},
		{op: "convert", dts: "f16→f32", bytes: 6, engineless: true, run: func(_ *elementwise.Engine, n int) {
			elementwise.Convert(out32[:n], src16[:n])
		}},
		{op: "convert", dts: "f32→bf16", bytes: 6, engineless: true, run: func(_ *elementwise.Engine, n int) {
			elementwise.Convert(outBF[:n], src32[:n])
		}},
		{op: "convert", dts: "int32→f64", bytes: 12, engineless: true, run: func(_ *elementwise.Engine, n int) {
			elementwise.Convert(out64[:n], srcI32a[:n])
		}},
	}

	widths := []simd.VectorWidth{caps.Width}
	if caps.Width != simd.WidthScalar {
		widths = append(widths, simd.WidthScalar)
	}
	engines := map[simd.VectorWidth]*elementwise.Engine{caps.Width: elementwise.New()}
	if caps.Width != simd.WidthScalar {
		engines[simd.WidthScalar] = elementwise.New(
			elementwise.WithCapabilities(simd.ForWidth(simd.WidthScalar)))
	}

	// The full cross product, flattened so progress and interruption are easy.
	type benchRun struct {
		c     benchCase
		width simd.VectorWidth
		size  int
	}
	var runs []benchRun
	for _, size := range sizeList {
		for _, c := range cases {
			for _, width := range widths {
				if c.engineless && width != caps.Width {
					continue
				}
				runs = append(runs, benchRun{c: c, width: width, size: size})
			}
		}
	}

	// Ctrl+C stops between measurements and reports the partial results.
	stop := xsync.NewLatch()
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	defer signal.Stop(signalChan)
	go func() {
		<-signalChan
		stop.Trigger()
	}()

	bar := progressbar.NewOptions(len(runs),
		progressbar.OptionSetDescription("Benchmarking: "),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("runs"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: ".",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	var results []benchResult
	for _, r := range runs {
		if stop.Test() {
			break
		}
		elemsPerSec := measure(r.c, engines[r.width], r.size)
		results = append(results, benchResult{
			Op:          r.c.op,
			DTypes:      r.c.dts,
			Width:       r.width.String(),
			Size:        r.size,
			ElemsPerSec: elemsPerSec,
			BytesPerSec: elemsPerSec * float64(r.c.bytes),
		})
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Println()
	interrupted := stop.Test()
	if interrupted {
		klog.Warningf("Interrupted, reporting the %d measurements finished so far.", len(results))
	}
	if len(results) == 0 {
		return
	}

	rates := xslices.Map(results, func(r benchResult) float64 { return r.ElemsPerSec })
	best := xslices.Max(rates)
	worst := xslices.Min(rates)

	out := termenv.NewOutput(os.Stdout)
	fmt.Println(titleStyle.Render("Elementwise Throughput"))
	table := newPlainTable(true)
	table.Row("Operation", "DTypes", "Width", "Size", "Elems/s", "Bytes/s")
	for _, r := range results {
		rate := humanize.SIWithDigits(r.ElemsPerSec, 1, "el/s")
		if r.ElemsPerSec == best {
			rate = out.String(rate).Foreground(out.Color("10")).Bold().String()
		}
		table.Row(r.Op, r.DTypes, r.Width, humanize.Comma(int64(r.Size)),
			rate, humanize.Bytes(uint64(r.BytesPerSec))+"/s")
	}
	fmt.Println(table.Render())
	fmt.Printf("%d measurements, sizes up to %s elements: fastest %s, slowest %s.\n",
		len(results), humanize.Comma(int64(maxSize)),
		out.String(humanize.SIWithDigits(best, 1, "el/s")).Foreground(out.Color("10")),
		humanize.SIWithDigits(worst, 1, "el/s"))

	if *flagReport != "" {
		report := benchReport{
			ID:          uuid.NewString(),
			Time:        time.Now(),
			Arch:        runtime.GOARCH,
			NumCPU:      runtime.NumCPU(),
			Width:       caps.Width.String(),
			Sizes:       sizeList,
			Interrupted: interrupted,
			Results:     results,
		}
		must.M(writeBenchReport(*flagReport, report))
		fmt.Printf("Results written to %s (run %s).\n", *flagReport, report.ID)
	}
}

// measure runs the case until minMeasure has elapsed and returns the element
// throughput. One warm-up pass is discarded.
func measure(c benchCase, e *elementwise.Engine, n int) float64 {
	c.run(e, n)
	var reps int
	start := time.Now()
	for {
		c.run(e, n)
		reps++
		if time.Since(start) >= minMeasure {
			break
		}
	}
	elapsed := time.Since(start)
	return float64(reps) * float64(n) / elapsed.Seconds()
}

func writeBenchReport(path string, report benchReport) error {
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode benchmark report")
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return errors.Wrapf(err, "cannot write benchmark report to %q", path)
	}
	return nil
}
