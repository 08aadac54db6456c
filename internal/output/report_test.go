package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency_IndianGrouping(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "₹0.00"},
		{500, "₹500.00"},
		{1000, "₹1,000.00"},
		{34840, "₹34,840.00"},
		{100000, "₹1,00,000.00"},
		{150000, "₹1,50,000.00"},
		{1200000, "₹12,00,000.00"},
		{12345678.5, "₹1,23,45,678.50"},
		{-5000, "-₹5,000.00"},
	}

	for _, tt := range tests {
		got := FormatCurrency(decimal.NewFromFloat(tt.amount))
		assert.Equal(t, tt.expected, got, "FormatCurrency(%v)", tt.amount)
	}
}

func TestFormatCurrencyShort(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{500, "₹500"},
		{2500, "₹2.5K"},
		{150000, "₹1.50L"},
		{1200000, "₹12.00L"},
		{12000000, "₹1.20Cr"},
		{-36660, "-₹36.7K"},
	}

	for _, tt := range tests {
		got := FormatCurrencyShort(decimal.NewFromInt(tt.amount))
		assert.Equal(t, tt.expected, got, "FormatCurrencyShort(%d)", tt.amount)
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "5.96%", FormatPercentage(decimal.NewFromFloat(5.9583)))
	assert.Equal(t, "-14.35%", FormatPercentage(decimal.NewFromFloat(-14.351)))
}

func TestReportGenerator_Generate_Console(t *testing.T) {
	var out bytes.Buffer
	generator := &ReportGenerator{Out: &out}

	err := generator.Generate(buildTestReport(), "console-lite")

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, out.String(), "TAX SCENARIO SUMMARY", "Should write summary to Out")
}

func TestReportGenerator_Generate_Alias(t *testing.T) {
	var out bytes.Buffer
	generator := &ReportGenerator{Out: &out}

	err := generator.Generate(buildTestReport(), "verbose")

	assert.NoError(t, err, "Should resolve alias")
	assert.Contains(t, out.String(), "DETAILED TAX REGIME ANALYSIS", "Should write verbose report")
}

func TestReportGenerator_Generate_File(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(originalDir)

	var out bytes.Buffer
	generator := &ReportGenerator{Out: &out}

	err := generator.Generate(buildTestReport(), "json")

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, out.String(), "Report written to taxwise_report_", "Should announce the file")
	assert.Contains(t, out.String(), ".json", "Should use the json extension")
}

func TestReportGenerator_Generate_UnknownFormat(t *testing.T) {
	var out bytes.Buffer
	generator := &ReportGenerator{Out: &out}

	err := generator.Generate(buildTestReport(), "yaml")

	assert.Error(t, err, "Should error for unknown format")
	assert.Contains(t, err.Error(), "unsupported format: yaml", "Should name the bad format")
	assert.Contains(t, err.Error(), "available:", "Should list available formats")
}
