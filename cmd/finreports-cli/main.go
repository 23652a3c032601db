// Command finreports-cli generates reports from the command line, printing
// either the human-readable summary or the JSON document.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finreports/internal/config"
	"finreports/internal/log"
	"finreports/internal/reports"
	"finreports/internal/source"
)

var allTypes = []reports.ReportType{
	reports.TypeProfitLoss,
	reports.TypeCashFlow,
	reports.TypeCategoryAnalysis,
	reports.TypeMerchantAnalysis,
	reports.TypeTrendAnalysis,
	reports.TypeAccountSummary,
}

func main() {
	_ = godotenv.Load()

	var (
		reportType   = flag.String("report", "", "report type to generate, or 'all' for every standard report")
		startDate    = flag.String("start", "", "start date (YYYY-MM-DD, inclusive)")
		endDate      = flag.String("end", "", "end date (YYYY-MM-DD, inclusive)")
		categories   = flag.String("categories", "", "comma-separated category allow-list")
		excludeCats  = flag.String("exclude-categories", "", "comma-separated category deny-list")
		merchants    = flag.String("merchants", "", "comma-separated merchant substring allow-list")
		excludeMerch = flag.String("exclude-merchants", "", "comma-separated merchant substring deny-list")
		accounts     = flag.String("accounts", "", "comma-separated account allow-list")
		minAmount    = flag.Float64("min-amount", 0, "minimum amount (inclusive)")
		maxAmount    = flag.Float64("max-amount", 0, "maximum amount (inclusive)")
		grouping     = flag.String("grouping", "monthly", "time grouping: daily, weekly, monthly, quarterly, yearly")
		topN         = flag.Int("top-n", 0, "limit category/merchant lists to the top N entries")
		groupBy      = flag.String("group-by", "", "custom report grouping field: category, merchant, account")
		sortBy       = flag.String("sort-by", "", "custom report sort field")
		sortOrder    = flag.String("sort-order", "desc", "custom report sort order: asc or desc")
		inputFile    = flag.String("input", "", "JSON transactions file (implies the in-memory backend)")
		asJSON       = flag.Bool("json", false, "print the JSON document instead of the summary")
	)
	flag.Parse()

	logger := log.New(log.Config{Component: log.ComponentCLI})
	log.SetDefault(logger)

	if *reportType == "" {
		fmt.Fprintln(os.Stderr, "usage: finreports-cli -report <type>|all [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Load()
	if *inputFile != "" {
		cfg.DataBackend = "memory"
		cfg.SeedFile = *inputFile
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()
	src, closeSource, err := source.Open(ctx, cfg, logger.WithComponent(log.ComponentSource))
	if err != nil {
		logger.Error("failed to initialize transaction source", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer closeSource()

	txs, err := src.Transactions(ctx)
	if err != nil {
		logger.Error("failed to load transactions", log.FieldError, err)
		os.Exit(1)
	}

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	filter, err := buildFilter(filterFlags{
		start:        *startDate,
		end:          *endDate,
		categories:   *categories,
		excludeCats:  *excludeCats,
		merchants:    *merchants,
		excludeMerch: *excludeMerch,
		accounts:     *accounts,
		minAmount:    *minAmount,
		minSet:       setFlags["min-amount"],
		maxAmount:    *maxAmount,
		maxSet:       setFlags["max-amount"],
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	params := reports.Params{
		Filter:   filter,
		Grouping: reports.ParseGrouping(*grouping),
		TopN:     *topN,
		GroupBy:  *groupBy,
	}
	if *sortBy != "" {
		params.Sort = &reports.Sort{Field: *sortBy, Order: reports.ParseSortOrder(*sortOrder)}
	}

	builder := reports.NewWithLogger(txs, logger.WithComponent(log.ComponentEngine))

	if strings.EqualFold(*reportType, "all") {
		if err := runAll(ctx, builder, params, *asJSON); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	report, err := builder.Generate(reports.ReportType(*reportType), params)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	printReport(report, *asJSON)
}

// runAll generates every standard report concurrently and prints them in a
// stable order.
func runAll(ctx context.Context, builder *reports.Builder, params reports.Params, asJSON bool) error {
	results := make(map[reports.ReportType]reports.Report, len(allTypes))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for _, rt := range allTypes {
		rt := rt
		g.Go(func() error {
			report, err := builder.Generate(rt, params)
			if err != nil {
				return err
			}
			mu.Lock()
			results[rt] = report
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if asJSON {
		docs := make(map[string]any, len(results))
		for rt, report := range results {
			docs[string(rt)] = report.Document()
		}
		return json.NewEncoder(os.Stdout).Encode(docs)
	}

	names := make([]string, 0, len(allTypes))
	for _, rt := range allTypes {
		names = append(names, string(rt))
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(results[reports.ReportType(name)].Summary())
	}
	return nil
}

func printReport(report reports.Report, asJSON bool) {
	if asJSON {
		_ = json.NewEncoder(os.Stdout).Encode(report.Document())
		return
	}
	fmt.Println(report.Summary())
}

// filterFlags carries the parsed filter flags together with whether the
// amount bounds were given on the command line, so an explicit zero bound
// stays distinct from an unset one.
type filterFlags struct {
	start, end           string
	categories           string
	excludeCats          string
	merchants            string
	excludeMerch         string
	accounts             string
	minAmount, maxAmount float64
	minSet, maxSet       bool
}

func buildFilter(ff filterFlags) (*reports.Filter, error) {
	f := &reports.Filter{
		Categories:        splitList(ff.categories),
		ExcludeCategories: splitList(ff.excludeCats),
		Merchants:         splitList(ff.merchants),
		ExcludeMerchants:  splitList(ff.excludeMerch),
		Accounts:          splitList(ff.accounts),
	}

	if ff.start != "" {
		d, err := time.Parse("2006-01-02", ff.start)
		if err != nil {
			return nil, fmt.Errorf("invalid -start %q: expected YYYY-MM-DD", ff.start)
		}
		f.StartDate = d
	}
	if ff.end != "" {
		d, err := time.Parse("2006-01-02", ff.end)
		if err != nil {
			return nil, fmt.Errorf("invalid -end %q: expected YYYY-MM-DD", ff.end)
		}
		f.EndDate = d
	}

	if ff.minSet {
		v := ff.minAmount
		f.MinAmount = &v
	}
	if ff.maxSet {
		v := ff.maxAmount
		f.MaxAmount = &v
	}

	return f, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
