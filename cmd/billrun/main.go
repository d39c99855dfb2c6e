package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"telecom-billing/internal/audit"
	"telecom-billing/internal/billing"
	"telecom-billing/internal/dataset"
	"telecom-billing/internal/lines"
	"telecom-billing/pkg/logger"
)

// billrun generates bills for every line in a dataset file and writes the
// results as JSON. It is the offline counterpart of the API's per-line
// endpoint: same engine, same ordering, memory-backed stores.

func main() {
	var (
		datasetPath = flag.String("dataset", "", "path to the customers dataset (JSON)")
		periodStr   = flag.String("period", "", "billing period as YYYY-MM (default: current month)")
		currency    = flag.String("currency", "USD", "default currency for contracts that omit one")
		outPath     = flag.String("out", "", "write generated bills to this file instead of stdout")
	)
	flag.Parse()

	log := logger.New("local")
	slog.SetDefault(log)

	if *datasetPath == "" {
		fmt.Fprintln(os.Stderr, "usage: billrun -dataset customers.json [-period YYYY-MM] [-out bills.json]")
		os.Exit(2)
	}

	p := billing.PeriodOf(time.Now())
	if *periodStr != "" {
		var err error
		p, err = billing.ParsePeriod(*periodStr)
		if err != nil {
			log.Error("invalid period", "period", *periodStr, "err", err)
			os.Exit(2)
		}
	}

	if err := run(context.Background(), log, *datasetPath, *currency, p, *outPath); err != nil {
		log.Error("bill run failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, datasetPath, currency string, p billing.Period, outPath string) error {
	customers, err := dataset.Load(datasetPath, dataset.Options{DefaultCurrency: currency})
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	lineRepo := lines.NewMemoryRepo()
	lineRepo.Seed(dataset.Lines(customers))

	billRepo := billing.NewMemoryRepo()
	auditRepo := audit.NewMemoryRepo()

	svc := billing.NewService(lineRepo, billRepo)
	svc.Audit = audit.NewService(auditRepo)

	all, err := lineRepo.ListLines(ctx)
	if err != nil {
		return err
	}

	var billed, failed int
	out := make([]billing.Bill, 0, len(all))
	for _, l := range all {
		bill, err := svc.GenerateBill(ctx, l.ID, p)
		if err != nil {
			failed++
			log.Error("line billing failed", "line_id", l.ID, "customer_id", l.CustomerID, "err", err)
			continue
		}
		billed++
		out = append(out, bill)
		log.Info("line billed", "line_id", l.ID, "bill_id", bill.ID, "total_minor", bill.TotalMinor)
	}

	_ = svc.Audit.LogBillRunCompleted(ctx, p.String(), billed, failed, datasetPath)
	log.Info("bill run completed", "period", p.String(), "billed", billed, "failed", failed)

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if outPath == "" {
		fmt.Println(string(raw))
	} else if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed", failed, len(all))
	}
	return nil
}
