// Command svfinfo prints the frequency response of state-variable filter
// designs.
//
// Usage:
//
//	svfinfo [flags] [type ...]
//
// Without arguments it prints every filter type except none.
//
// Examples:
//
//	svfinfo bell
//	svfinfo -freq 250 -gain -6 -q 2 lowshelf highshelf
//	svfinfo -rate 44100 -points 16 -autoq bell
//	svfinfo -measure -fft 8192 lowpass
//	svfinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-svf/dsp/filter/svf"
	"github.com/cwbudde/algo-svf/measure/response"
)

type design struct {
	typ   svf.Type
	c     svf.Coefficients
	label string
}

func main() {
	freq := flag.Float64("freq", 1000, "corner or centre frequency in Hz")
	gain := flag.Float64("gain", 0, "gain in dB (bell, shelves, auto-Q)")
	q := flag.Float64("q", svf.DefaultQ, "resonance")
	autoQ := flag.Bool("autoq", false, "widen resonance with gain")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	points := flag.Int("points", 24, "number of log-spaced frequencies")
	minHz := flag.Float64("min", 20, "lowest frequency in Hz")
	maxHz := flag.Float64("max", 20000, "highest frequency in Hz")
	measure := flag.Bool("measure", false, "add a column measured from the impulse response")
	fftSize := flag.Int("fft", 4096, "FFT size for -measure (power of two)")
	list := flag.Bool("list", false, "list available filter types")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: svfinfo [flags] [type ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints magnitude and phase of TPT state-variable filter designs.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints every type except none.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  svfinfo bell\n")
		fmt.Fprintf(os.Stderr, "  svfinfo -freq 250 -gain -6 -q 2 lowshelf highshelf\n")
		fmt.Fprintf(os.Stderr, "  svfinfo -measure lowpass\n")
		fmt.Fprintf(os.Stderr, "  svfinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		for _, t := range svf.Types() {
			if t != svf.TypeNone {
				names = append(names, t.String())
			}
		}
	}

	designs := resolveDesigns(names, *rate, *freq, *gain, *q, *autoQ)
	if len(designs) == 0 {
		fmt.Fprintf(os.Stderr, "error: no valid filter designs\n")
		os.Exit(1)
	}

	curve, err := svf.NewResponseCurve(*points, *minHz, math.Min(*maxHz, 0.5**rate))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var analyzer *response.Analyzer
	if *measure {
		analyzer, err = response.NewAnalyzer(*fftSize, *rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	for i, d := range designs {
		if i > 0 {
			fmt.Println()
		}
		if err := printDesign(os.Stdout, d, curve, *rate, analyzer); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printList(w io.Writer) {
	for _, t := range svf.Types() {
		fmt.Fprintln(w, t)
	}
}

func resolveDesigns(names []string, rate, freq, gain, q float64, autoQ bool) []design {
	var result []design
	for _, name := range names {
		t, err := svf.ParseType(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: unknown type %q (use -list to see available)\n", strings.TrimSpace(name))
			continue
		}

		c := svf.Passthrough()
		if t != svf.TypeNone {
			c, err = svf.NewCoefficients(t, rate, freq, gain, q, autoQ)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %s: %v\n", t, err)
				continue
			}
		}

		label := fmt.Sprintf("%s  f=%g Hz  q=%g", t, freq, q)
		if t.UsesGain() || autoQ {
			label += fmt.Sprintf("  gain=%+g dB", gain)
		}
		if autoQ {
			label += fmt.Sprintf("  autoQ (q=%.4g)", svf.CalculateAutoQ(q, gain, true))
		}
		result = append(result, design{typ: t, c: c, label: label})
	}
	return result
}

func printDesign(w io.Writer, d design, curve *svf.ResponseCurve, rate float64, analyzer *response.Analyzer) error {
	curve.Evaluate(d.c, rate)

	var measured response.Response
	if analyzer != nil {
		var err error
		measured, err = analyzer.Measure(svf.NewFilter(d.c))
		if err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "# %s\n", d.label); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := "Freq [Hz]\tMagnitude [dB]\tPhase [deg]\t"
	rule := "---------\t--------------\t-----------\t"
	if analyzer != nil {
		header += "Measured [dB]\tError [dB]\t"
		rule += "-------------\t----------\t"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, rule); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	freqs := curve.Frequencies()
	mags := curve.MagnitudesDB()
	phases := curve.Phases()
	for i, f := range freqs {
		row := fmt.Sprintf("%.1f\t%.3f\t%.2f\t", f, mags[i], phases[i]*180/math.Pi)
		if analyzer != nil {
			m := measured.MagnitudeDBAt(f)
			row += fmt.Sprintf("%.3f\t%.2e\t", m, math.Abs(m-mags[i]))
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if analyzer != nil {
		dev, err := response.Compare(d.c, measured)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(tw, "max linear deviation\t%.3e\t\t\t\t\n", dev); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
