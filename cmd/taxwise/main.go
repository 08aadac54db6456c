// Command taxwise compares Indian income-tax liability under the old and new
// regimes for salaried scenarios described in a YAML configuration.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/taxwise/taxwise/internal/advise"
	"github.com/taxwise/taxwise/internal/breakeven"
	"github.com/taxwise/taxwise/internal/calculation"
	"github.com/taxwise/taxwise/internal/compare"
	"github.com/taxwise/taxwise/internal/config"
	"github.com/taxwise/taxwise/internal/domain"
	"github.com/taxwise/taxwise/internal/ingest"
	"github.com/taxwise/taxwise/internal/output"
	"github.com/taxwise/taxwise/internal/transform"
)

// Populated by the release build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// defaultRulesFile is picked up from the working directory when --rules is
// not given, so a custom slab table travels with the configuration.
const defaultRulesFile = "rules.yaml"

// simpleCLILogger adapts the standard logger to the calculation engine's
// Logger interface for --debug runs.
type simpleCLILogger struct{}

func (l *simpleCLILogger) Debugf(format string, args ...any) {
	log.Printf("DEBUG: "+format, args...)
}

func (l *simpleCLILogger) Infof(format string, args ...any) {
	log.Printf("INFO: "+format, args...)
}

func (l *simpleCLILogger) Warnf(format string, args ...any) {
	log.Printf("WARN: "+format, args...)
}

func (l *simpleCLILogger) Errorf(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// loadRegulatory loads the rules file named by --rules, falling back to
// rules.yaml in the working directory when present. A nil return with no
// error means only the built-in fiscal years are available.
func loadRegulatory(cmd *cobra.Command) (*domain.RegulatoryConfig, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile == "" && fileExists(defaultRulesFile) {
		rulesFile = defaultRulesFile
	}
	if rulesFile == "" {
		return nil, nil
	}

	parser := config.NewInputParser()
	reg, err := parser.LoadRules(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules from %s: %w", rulesFile, err)
	}
	return reg, nil
}

// buildEngine resolves the fiscal year against the built-in and loaded rule
// tables and wires the debug logger when --debug is set.
func buildEngine(cmd *cobra.Command, fiscalYear string) (*calculation.CalculationEngine, error) {
	reg, err := loadRegulatory(cmd)
	if err != nil {
		return nil, err
	}

	cfg := &domain.Configuration{FiscalYear: fiscalYear}
	rules, err := config.ResolveFiscalYear(cfg, reg)
	if err != nil {
		return nil, err
	}

	engine := calculation.NewCalculationEngineWithRules(rules)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(&simpleCLILogger{})
	}
	return engine, nil
}

// loadConfiguration parses the scenario file and applies a --fy override when
// the command defines one.
func loadConfiguration(cmd *cobra.Command, filename string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}

	if fy, _ := cmd.Flags().GetString("fy"); fy != "" {
		cfg.FiscalYear = fy
	}
	return cfg, nil
}

// finiteAmount converts a float flag into a decimal rupee amount, rejecting
// NaN, infinities, and negative values before they reach the engine.
func finiteAmount(name string, value float64) (decimal.Decimal, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Decimal{}, fmt.Errorf("--%s must be a finite number", name)
	}
	if value < 0 {
		return decimal.Decimal{}, fmt.Errorf("--%s cannot be negative", name)
	}
	return decimal.NewFromFloat(value), nil
}

var rootCmd = &cobra.Command{
	Use:   "taxwise",
	Short: "Old vs new regime income-tax planner for salaried India",
	Long: `TaxWise compares income-tax liability under India's old and new regimes.

Scenarios (gross income plus declared deductions) live in a YAML file. Each
scenario is computed under both regimes with the statutory slab tables, caps,
standard deductions and cess for the chosen fiscal year, and the cheaper
regime is recommended.

Slab tables for additional fiscal years can be supplied with --rules; a
rules.yaml in the working directory is picked up automatically.`,
	SilenceUsage: true,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [config file]",
	Short: "Compare both regimes for every scenario in a configuration",
	Long: `Calculate old and new regime liability for every scenario in the
configuration file and render a report.

Console formats print to stdout; file formats (json, csv, detailed-csv, html)
are written to timestamped report files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")

		cfg, err := loadConfiguration(cmd, args[0])
		if err != nil {
			return err
		}

		engine, err := buildEngine(cmd, cfg.FiscalYear)
		if err != nil {
			return err
		}

		report, err := engine.RunScenarios(cfg)
		if err != nil {
			return fmt.Errorf("calculation failed: %w", err)
		}

		return output.GenerateReport(report, formatName)
	},
}

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "One-shot comparison from amount flags, no config file",
	Long: `Compare both regimes for a single scenario supplied entirely on the
command line. Useful for a first look before writing a configuration file.

Example:
  taxwise quick --income 1200000 --hra 120000 --80c 150000 --80d 25000 \
    --home-loan 200000 --other 50000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		formatName, _ := cmd.Flags().GetString("format")
		fiscalYear, _ := cmd.Flags().GetString("fy")
		if fiscalYear == "" {
			fiscalYear = domain.DefaultFiscalYear
		}

		amounts := []struct {
			flag string
			dst  *decimal.Decimal
		}{
			{"income", nil},
			{"hra", nil},
			{"80c", nil},
			{"80d", nil},
			{"home-loan", nil},
			{"other", nil},
		}

		scenario := domain.TaxScenario{Name: name}
		amounts[0].dst = &scenario.Income
		amounts[1].dst = &scenario.HRA
		amounts[2].dst = &scenario.Section80C
		amounts[3].dst = &scenario.Section80D
		amounts[4].dst = &scenario.HomeLoanInterest
		amounts[5].dst = &scenario.OtherDeductions

		for _, a := range amounts {
			raw, _ := cmd.Flags().GetFloat64(a.flag)
			value, err := finiteAmount(a.flag, raw)
			if err != nil {
				return err
			}
			*a.dst = value
		}

		if err := scenario.Validate(); err != nil {
			return err
		}

		engine, err := buildEngine(cmd, fiscalYear)
		if err != nil {
			return err
		}

		cfg := &domain.Configuration{
			FiscalYear: fiscalYear,
			Scenarios:  []domain.TaxScenario{scenario},
		}

		report, err := engine.RunScenarios(cfg)
		if err != nil {
			return fmt.Errorf("calculation failed: %w", err)
		}

		return output.GenerateReport(report, formatName)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [config file]",
	Short: "Compare a base scenario against template or scenario alternatives",
	Long: `Compare a base scenario against alternatives derived from what-if
templates (--with) or against other scenarios from the same file (--against).

Templates modify the base scenario, for example maxing Section 80C or zeroing
all deductions, and report the tax delta against the base. Use
--list-templates to see what is available.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listTemplates, _ := cmd.Flags().GetBool("list-templates")
		if listTemplates {
			engine := calculation.NewCalculationEngine()
			registry := transform.CreateBuiltInTemplates(engine.Rules())
			fmt.Println(transform.GetTemplateHelp(registry))
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("config file is required (or use --list-templates)")
		}

		baseName, _ := cmd.Flags().GetString("base")
		withList, _ := cmd.Flags().GetString("with")
		againstList, _ := cmd.Flags().GetString("against")
		formatName, _ := cmd.Flags().GetString("format")

		if baseName == "" {
			return fmt.Errorf("--base scenario name is required")
		}
		if withList == "" && againstList == "" {
			return fmt.Errorf("nothing to compare: provide --with templates or --against scenarios")
		}
		if withList != "" && againstList != "" {
			return fmt.Errorf("--with and --against are mutually exclusive")
		}

		cfg, err := loadConfiguration(cmd, args[0])
		if err != nil {
			return err
		}

		engine, err := buildEngine(cmd, cfg.FiscalYear)
		if err != nil {
			return err
		}

		compEngine := compare.NewCompareEngine(engine)
		ctx := context.Background()

		var compSet *compare.ComparisonSet
		if againstList != "" {
			compSet, err = compEngine.CompareScenarios(ctx, cfg, baseName, transform.ParseTemplateList(againstList))
		} else {
			compSet, err = compEngine.Compare(ctx, cfg, compare.CompareOptions{
				BaseScenarioName: baseName,
				Templates:        transform.ParseTemplateList(withList),
			})
		}
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		switch formatName {
		case "csv":
			formatter := &compare.CSVFormatter{}
			out, err := formatter.Format(compSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Print(out)
		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			out, err := formatter.Format(compSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Println(out)
		default:
			formatter := &compare.TableFormatter{}
			fmt.Print(formatter.Format(compSet))
		}

		return nil
	},
}

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [config file]",
	Short: "Solve the deduction total where the old regime breaks even",
	Long: `Find the smallest whole-rupee itemised-deduction total at which the
old regime's liability drops to the new regime's, for one scenario.

With --sweep from:to:step the solver runs across a range of gross incomes
instead, producing a break-even curve.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioName, _ := cmd.Flags().GetString("scenario")
		incomeFlag, _ := cmd.Flags().GetFloat64("income")
		sweepSpec, _ := cmd.Flags().GetString("sweep")
		maxIterations, _ := cmd.Flags().GetInt("max-iterations")
		formatName, _ := cmd.Flags().GetString("format")

		cfg, err := loadConfiguration(cmd, args[0])
		if err != nil {
			return err
		}

		engine, err := buildEngine(cmd, cfg.FiscalYear)
		if err != nil {
			return err
		}

		options := breakeven.DefaultSolverOptions()
		if maxIterations > 0 {
			options.MaxIterations = maxIterations
		}
		solver := breakeven.NewSolver(engine, options)
		formatter := output.NewBreakEvenFormatter(formatName)
		ctx := context.Background()

		if sweepSpec != "" {
			from, to, step, err := parseSweepRange(sweepSpec)
			if err != nil {
				return err
			}
			points, err := solver.Sweep(ctx, from, to, step)
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}
			out, err := formatter.FormatBreakEvenCurve(points)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		}

		var scenario *domain.TaxScenario
		if scenarioName != "" {
			if scenario = cfg.FindScenario(scenarioName); scenario == nil {
				return fmt.Errorf("scenario %s not found in configuration", scenarioName)
			}
		} else {
			scenario = &cfg.Scenarios[0]
		}

		if incomeFlag != 0 {
			income, err := finiteAmount("income", incomeFlag)
			if err != nil {
				return err
			}
			override := scenario.DeepCopy()
			override.Income = income
			scenario = override
		}

		result, err := solver.Solve(ctx, scenario)
		if err != nil {
			return fmt.Errorf("break-even solve failed: %w", err)
		}

		out, err := formatter.FormatBreakEvenResult(result)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [config file]",
	Short: "Suggest deduction moves that lower a scenario's tax",
	Long: `Analyze one scenario's unused deduction headroom and report, per
section, the exact tax saved by filling it, together with the regime
recommendation and break-even context.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioName, _ := cmd.Flags().GetString("scenario")
		formatName, _ := cmd.Flags().GetString("format")

		cfg, err := loadConfiguration(cmd, args[0])
		if err != nil {
			return err
		}

		engine, err := buildEngine(cmd, cfg.FiscalYear)
		if err != nil {
			return err
		}

		var scenario *domain.TaxScenario
		if scenarioName != "" {
			if scenario = cfg.FindScenario(scenarioName); scenario == nil {
				return fmt.Errorf("scenario %s not found in configuration", scenarioName)
			}
		} else {
			scenario = &cfg.Scenarios[0]
		}

		advisor := advise.NewAdvisor(engine)
		advice, err := advisor.Advise(context.Background(), scenario)
		if err != nil {
			return fmt.Errorf("advice generation failed: %w", err)
		}

		formatter := output.NewAdviceFormatter(formatName)
		out, err := formatter.FormatAdvice(advice)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [statement.csv]",
	Short: "Derive a tax scenario from a bank statement CSV",
	Long: `Parse a bank statement (columns: date,amount,category,description),
classify salary credits and deductible spending, annualize by the months
observed, and print the derived scenario with a regime recommendation.

Use --save to write the derived scenario to a configuration file for the
other commands.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioName, _ := cmd.Flags().GetString("name")
		jsonOut, _ := cmd.Flags().GetBool("json")
		saveFile, _ := cmd.Flags().GetString("save")
		fiscalYear, _ := cmd.Flags().GetString("fy")
		if fiscalYear == "" {
			fiscalYear = domain.DefaultFiscalYear
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open statement: %w", err)
		}
		defer f.Close()

		analyzer := ingest.NewStatementAnalyzer()
		scenario, summary, err := analyzer.AnalyzeStatement(f, scenarioName)
		if err != nil {
			return fmt.Errorf("statement analysis failed: %w", err)
		}

		formatter := output.StatementConsoleFormatter{}

		if jsonOut {
			out, err := formatter.FormatStatementSummaryJSON(&summary)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		out, err := formatter.FormatStatementSummary(&summary)
		if err != nil {
			return err
		}
		fmt.Print(out)

		out, err = formatter.FormatDerivedScenario(scenario, summary.MonthsObserved)
		if err != nil {
			return err
		}
		fmt.Print(out)

		engine, err := buildEngine(cmd, fiscalYear)
		if err != nil {
			return err
		}
		comparison, err := engine.Compare(scenario)
		if err != nil {
			return fmt.Errorf("calculation failed: %w", err)
		}
		fmt.Printf("\nRecommended regime (FY %s): %s, saving %s per year\n",
			comparison.FiscalYear,
			domain.RegimeDisplayName(comparison.RecommendedRegime),
			output.FormatCurrency(comparison.PotentialSavings))

		if saveFile != "" {
			cfg := &domain.Configuration{
				FiscalYear: fiscalYear,
				Scenarios:  []domain.TaxScenario{*scenario},
			}
			if err := config.SaveConfiguration(cfg, saveFile); err != nil {
				return err
			}
			fmt.Printf("Derived scenario written to %s\n", saveFile)
		}

		return nil
	},
}

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Print the statutory tables for a fiscal year",
	Long: `Print the slab tables, standard deductions, deduction caps and cess
rate for a fiscal year. Built-in years are 2024-25 and 2023-24; more can be
supplied with --rules.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fiscalYear, _ := cmd.Flags().GetString("fy")
		formatName, _ := cmd.Flags().GetString("format")
		if fiscalYear == "" {
			fiscalYear = domain.DefaultFiscalYear
		}

		reg, err := loadRegulatory(cmd)
		if err != nil {
			return err
		}
		rules, err := config.ResolveFiscalYear(&domain.Configuration{FiscalYear: fiscalYear}, reg)
		if err != nil {
			return err
		}

		if formatName == "json" {
			data, err := json.MarshalIndent(rules, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Fiscal Year %s\n", rules.FiscalYear)
		fmt.Printf("Health & education cess: %s\n\n", output.FormatPercentage(rules.CessRate.Mul(decimal.NewFromInt(100))))
		printRegimeRules(rules.OldRegime)
		fmt.Println()
		printRegimeRules(rules.NewRegime)
		return nil
	},
}

func printRegimeRules(r domain.RegimeRules) {
	fmt.Println(r.Name)
	fmt.Printf("  Standard deduction: %s\n", output.FormatCurrency(r.StandardDeduction))
	if r.AllowsItemized {
		fmt.Printf("  Section 80C cap:    %s\n", output.FormatCurrency(r.Section80CCap))
		fmt.Printf("  Section 80D cap:    %s\n", output.FormatCurrency(r.Section80DCap))
		fmt.Printf("  HRA exemption cap:  %s of gross income\n",
			output.FormatPercentage(r.HRAIncomeFraction.Mul(decimal.NewFromInt(100))))
	} else {
		fmt.Println("  Itemised deductions: not allowed")
	}
	fmt.Println("  Slabs:")
	for _, slab := range r.Slabs {
		fmt.Printf("    %-22s %s\n", slab.Label(),
			output.FormatPercentage(slab.Rate.Mul(decimal.NewFromInt(100))))
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [config file]",
	Short: "Validate a configuration file without calculating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration(cmd, args[0])
		if err != nil {
			return err
		}

		reg, err := loadRegulatory(cmd)
		if err != nil {
			return err
		}
		rules, err := config.ResolveFiscalYear(cfg, reg)
		if err != nil {
			return err
		}

		fmt.Printf("Configuration is valid: %d scenario(s), fiscal year %s\n",
			len(cfg.Scenarios), rules.FiscalYear)
		for _, scenario := range cfg.Scenarios {
			fmt.Printf("  %-24s gross %s, itemised %s\n", scenario.Name,
				output.FormatCurrencyShort(scenario.Income),
				output.FormatCurrencyShort(scenario.ItemizedTotal()))
		}
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write a starter configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outFile, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")

		if fileExists(outFile) && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", outFile)
		}

		cfg := config.CreateExampleConfiguration()
		if err := config.SaveConfiguration(cfg, outFile); err != nil {
			return err
		}

		fmt.Printf("Example configuration written to %s\n", outFile)
		fmt.Printf("Run: taxwise calculate %s\n", outFile)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taxwise %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		if info, ok := debug.ReadBuildInfo(); ok && version == "dev" {
			fmt.Printf("  module: %s %s\n", info.Main.Path, info.Main.Version)
		}
	},
}

func parseSweepRange(spec string) (from, to, step decimal.Decimal, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		err = fmt.Errorf("sweep range must be from:to:step, got %q", spec)
		return
	}
	if from, err = decimal.NewFromString(strings.TrimSpace(parts[0])); err != nil {
		err = fmt.Errorf("invalid sweep lower bound %q: %w", parts[0], err)
		return
	}
	if to, err = decimal.NewFromString(strings.TrimSpace(parts[1])); err != nil {
		err = fmt.Errorf("invalid sweep upper bound %q: %w", parts[1], err)
		return
	}
	if step, err = decimal.NewFromString(strings.TrimSpace(parts[2])); err != nil {
		err = fmt.Errorf("invalid sweep step %q: %w", parts[2], err)
		return
	}
	return
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("rules", "", "Regulatory rules YAML with additional fiscal years")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, json, csv, detailed-csv, html)")
	calculateCmd.Flags().String("fy", "", "Fiscal year override (e.g. 2024-25)")

	quickCmd.Flags().Float64("income", 0, "Annual gross salary income")
	quickCmd.Flags().Float64("hra", 0, "HRA exemption claimed")
	quickCmd.Flags().Float64("80c", 0, "Section 80C investments")
	quickCmd.Flags().Float64("80d", 0, "Section 80D insurance premiums")
	quickCmd.Flags().Float64("home-loan", 0, "Home loan interest (Section 24b)")
	quickCmd.Flags().Float64("other", 0, "Other Chapter VI-A deductions")
	quickCmd.Flags().String("name", "Quick Scenario", "Scenario name in the report")
	quickCmd.Flags().StringP("format", "f", "console", "Output format")
	quickCmd.Flags().String("fy", "", "Fiscal year (e.g. 2024-25)")
	_ = quickCmd.MarkFlagRequired("income")

	compareCmd.Flags().String("base", "", "Base scenario name")
	compareCmd.Flags().String("with", "", "Comma-separated template names to apply to the base")
	compareCmd.Flags().String("against", "", "Comma-separated scenario names to compare against")
	compareCmd.Flags().Bool("list-templates", false, "List available what-if templates")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().String("fy", "", "Fiscal year override (e.g. 2024-25)")

	breakevenCmd.Flags().String("scenario", "", "Scenario name (default: first in file)")
	breakevenCmd.Flags().Float64("income", 0, "Gross income override for the solve")
	breakevenCmd.Flags().String("sweep", "", "Income range from:to:step for a break-even curve")
	breakevenCmd.Flags().Int("max-iterations", 0, "Bisection iteration cap")
	breakevenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	breakevenCmd.Flags().String("fy", "", "Fiscal year override (e.g. 2024-25)")

	optimizeCmd.Flags().String("scenario", "", "Scenario name (default: first in file)")
	optimizeCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	optimizeCmd.Flags().String("fy", "", "Fiscal year override (e.g. 2024-25)")

	analyzeCmd.Flags().String("name", "Statement Scenario", "Name for the derived scenario")
	analyzeCmd.Flags().Bool("json", false, "Print the statement summary as JSON")
	analyzeCmd.Flags().String("save", "", "Write the derived scenario to a configuration file")
	analyzeCmd.Flags().String("fy", "", "Fiscal year for the recommendation (e.g. 2024-25)")

	constantsCmd.Flags().String("fy", "", "Fiscal year (default 2024-25)")
	constantsCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	exampleCmd.Flags().StringP("output", "o", "taxwise.yaml", "Destination file")
	exampleCmd.Flags().Bool("force", false, "Overwrite an existing file")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(breakevenCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
