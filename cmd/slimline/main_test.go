package main

import (
	"math"
	"testing"

	"github.com/tsawler/slimline/report"
)

func TestMeanReductions(t *testing.T) {
	entries := []report.Entry{
		{File: "a.page.xml", LineCount: 4, MaskCount: 4, LinePercent: 0.40, MaskPercent: 0.30},
		{File: "b.page.xml", LineCount: 2, MaskCount: 2, LinePercent: 0.20, MaskPercent: 0.10},
		// A lines-only output must not dilute the mask mean.
		{File: "c.alto.xml", LineCount: 3, LinePercent: 0.30},
	}
	meanLine, meanMask := meanReductions(entries)
	if math.Abs(meanLine-0.30) > 1e-12 {
		t.Errorf("Expected mean line reduction 0.30, got %f", meanLine)
	}
	if math.Abs(meanMask-0.20) > 1e-12 {
		t.Errorf("Expected mean mask reduction 0.20, got %f", meanMask)
	}
}

func TestMeanReductionsNoMasks(t *testing.T) {
	entries := []report.Entry{
		{File: "a.alto.xml", LineCount: 1, LinePercent: 0.50},
	}
	meanLine, meanMask := meanReductions(entries)
	if meanLine != 0.50 {
		t.Errorf("Expected mean line reduction 0.50, got %f", meanLine)
	}
	if meanMask != 0 {
		t.Errorf("Expected zero mask mean without masks, got %f", meanMask)
	}
}

func TestParseValues(t *testing.T) {
	values, err := parseValues("0.05, 0.1,0.2")
	if err != nil {
		t.Fatalf("parseValues returned error: %v", err)
	}
	want := []float64{0.05, 0.1, 0.2}
	if len(values) != len(want) {
		t.Fatalf("Expected %d values, got %v", len(want), values)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("Value %d: expected %v, got %v", i, want[i], values[i])
		}
	}
	if _, err := parseValues("0.1,huge"); err == nil {
		t.Error("Expected error for a non-numeric ratio")
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		path, suffix, outDir, want string
	}{
		{"data/page.xml", "simple", "", "data/page.simple.xml"},
		{"data/page.xml", "simple-10", "out", "out/page.simple-10.xml"},
		{"page.xml", "simple", "", "page.simple.xml"},
	}
	for _, tt := range tests {
		if got := outputName(tt.path, tt.suffix, tt.outDir); got != tt.want {
			t.Errorf("outputName(%q, %q, %q) = %q; want %q", tt.path, tt.suffix, tt.outDir, got, tt.want)
		}
	}
}
