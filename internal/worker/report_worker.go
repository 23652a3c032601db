// Package worker runs report generation jobs received over AMQP. Each job
// loads the current transaction set, generates the requested report, and
// publishes the document to the results queue.
package worker

import (
	"context"
	"fmt"
	"time"

	"finreports/internal/amqp"
	"finreports/internal/log"
	"finreports/internal/reports"
	"finreports/internal/source"
)

// ResultPublisher is the slice of the AMQP client the worker needs; narrow
// so tests can fake it.
type ResultPublisher interface {
	PublishResult(ctx context.Context, res *amqp.ReportResult) error
}

type ReportWorker struct {
	src       source.TransactionSource
	publisher ResultPublisher
	logger    *log.Logger
}

func NewReportWorker(src source.TransactionSource, publisher ResultPublisher, logger *log.Logger) *ReportWorker {
	return &ReportWorker{
		src:       src,
		publisher: publisher,
		logger:    logger,
	}
}

// HandleRequest processes a single report request. Generation failures still
// publish a result carrying the error so the requester is not left waiting;
// only infrastructure failures (load, publish) propagate as handler errors.
func (w *ReportWorker) HandleRequest(ctx context.Context, req *amqp.ReportRequest) error {
	w.logger.InfoContext(ctx, "processing report request",
		log.FieldJobID, req.ID,
		log.FieldReportType, req.Type)

	txs, err := w.src.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	res := &amqp.ReportResult{
		ID:          req.ID,
		Type:        req.Type,
		GeneratedAt: time.Now().UTC(),
	}

	builder := reports.NewWithLogger(txs, w.logger)
	report, err := builder.Generate(reports.ReportType(req.Type), req.Params)
	if err != nil {
		w.logger.WarnContext(ctx, "report generation failed",
			log.FieldJobID, req.ID,
			log.FieldReportType, req.Type,
			log.FieldError, err)
		res.Error = err.Error()
	} else {
		res.Document = report.Document()
	}

	if err := w.publisher.PublishResult(ctx, res); err != nil {
		return fmt.Errorf("publish result: %w", err)
	}

	w.logger.InfoContext(ctx, "report request completed",
		log.FieldJobID, req.ID,
		log.FieldReportType, req.Type,
		log.FieldTxCount, len(txs))
	return nil
}
