// simplevec_info reports what simplevec will do on the current machine: the
// vector width selected for the CPU, the supported dtypes, the conversion
// matrix, and optionally a throughput benchmark of the elementwise operations.
//
// With no flags it prints the capabilities report. See -help for the
// individual reports.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/simplevec/pkg/core/dtypes"
	"github.com/gomlx/simplevec/pkg/elementwise"
	"github.com/gomlx/simplevec/pkg/simd"
	"github.com/gomlx/simplevec/pkg/support/xslices"
	"k8s.io/klog/v2"
)

var (
	flagCaps = flag.Bool("caps", false, "Reports the vector width selected for this CPU, "+
		"the CPU flags that backed the selection and the environment overrides in effect. "+
		"This is the default report if no other is selected.")
	flagDTypes  = flag.Bool("dtypes", false, "Lists the supported dtypes with their Go types, sizes and value ranges.")
	flagConvert = flag.Bool("convert", false, "Prints the dtype conversion support matrix.")
	flagBench = flag.Bool("bench", false, "Measures the throughput of the elementwise operations over the "+
		"sizes given by -sizes. Each operation runs once per vector width, so the report shows what the "+
		"wider paths buy on this machine.")
	flagSizes = xslices.Flag("sizes", []int{4096, 65536, 1048576},
		"Comma-separated slice sizes, in elements, benchmarked by -bench.", strconv.Atoi)
	flagReport = flag.String("report", "", "File to write the -bench results to, as JSON.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if len(flag.Args()) > 0 {
		klog.Errorf("Unexpected arguments %q. See 'simplevec_info -help'.", flag.Args())
		os.Exit(1)
	}
	if !*flagCaps && !*flagDTypes && !*flagConvert && !*flagBench {
		*flagCaps = true
	}
	report()
}

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == 1 {
				s = headerRowStyle
				return
			}
			switch {
			case row%2 == 0:
				// Even row style.
				s = oddRowStyle
			default:
				// Odd row style
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

func report() {
	caps := simd.Detect()

	if *flagCaps {
		fmt.Println(titleStyle.Render("Vector Capabilities"))
		table := newPlainTable(false)
		table.Row("width", caps.Width.String())
		table.Row("float32 lanes", strconv.Itoa(caps.Width.Lanes()))
		table.Row("cpu flags", cpuFlags(caps))
		table.Row("overridden", strconv.FormatBool(caps.Overridden))
		for _, env := range []string{simd.NoSIMDEnv, simd.WidthEnv} {
			if value, found := os.LookupEnv(env); found {
				table.Row(env, strconv.Quote(value))
			} else {
				table.Row(env, "(unset)")
			}
		}
		table.Row("arch", runtime.GOARCH)
		table.Row("# cpus", humanize.Comma(int64(runtime.NumCPU())))
		fmt.Println(table.Render())
	}

	if *flagDTypes {
		fmt.Println(titleStyle.Render("DTypes"))
		table := newPlainTable(true)
		table.Row("DType", "Go Type", "Bits", "Kind", "Lowest", "Highest")
		for dtype := dtypes.Bool; dtype < dtypes.MaxDType; dtype++ {
			table.Row(dtype.String(), dtype.GoStr(), strconv.Itoa(dtype.Bits()), dtypeKind(dtype),
				fmt.Sprintf("%v", dtype.LowestValue()), fmt.Sprintf("%v", dtype.HighestValue()))
		}
		fmt.Println(table.Render())
	}

	if *flagConvert {
		fmt.Println(titleStyle.Render("Convert Support"))
		table := newPlainTable(true)
		header := make([]string, 1, dtypes.MaxDType)
		header[0] = `from \ to`
		for to := dtypes.Bool; to < dtypes.MaxDType; to++ {
			header = append(header, to.String())
		}
		table.Row(header...)
		for from := dtypes.Bool; from < dtypes.MaxDType; from++ {
			row := make([]string, 1, dtypes.MaxDType)
			row[0] = from.String()
			for to := dtypes.Bool; to < dtypes.MaxDType; to++ {
				if elementwise.CanConvert(from, to) {
					row = append(row, "yes")
				} else {
					row = append(row, "")
				}
			}
			table.Row(row...)
		}
		fmt.Println(table.Render())
	}

	if *flagBench {
		bench(caps)
	}
}

func cpuFlags(caps simd.Capabilities) string {
	var flags []string
	if caps.AVX2 {
		flags = append(flags, "avx2")
	}
	if caps.AVX512F {
		flags = append(flags, "avx512f")
	}
	if caps.AVX512BW {
		flags = append(flags, "avx512bw")
	}
	if caps.NEON {
		flags = append(flags, "neon")
	}
	if len(flags) == 0 {
		return "(none)"
	}
	return strings.Join(flags, ", ")
}

func dtypeKind(dtype dtypes.DType) string {
	switch {
	case dtype == dtypes.Bool:
		return "bool"
	case dtype.IsFloat16():
		return "float, widened to float32"
	case dtype.IsFloat():
		return "float"
	case dtype.IsUnsigned():
		return "unsigned int"
	case dtype.IsInt():
		return "signed int"
	}
	return "?"
}
