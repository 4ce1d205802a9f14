package baser

import (
	"context"
	"sync"
	"time"

	"github.com/fivetwenty-io/baser-client/internal/constants"
)

// BatchOperation represents a single call in a batch.
type BatchOperation struct {
	ID        string
	Operation Operation
	Request   *CallRequest
	Callback  func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Record   Record
	Error    error
	Duration time.Duration
}

// BatchExecutor runs independent calls concurrently on one Dispatcher.
type BatchExecutor struct {
	dispatcher  Dispatcher
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor. A non-positive concurrency
// uses the default.
func NewBatchExecutor(dispatcher Dispatcher, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultBatchConcurrency
	}

	return &BatchExecutor{
		dispatcher:  dispatcher,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the per-call timeout. Zero disables it.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs operations and returns their results in input order. A failed
// call does not stop the others; its error is in its result.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) []BatchResult {
	results := make([]BatchResult, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func(index int, operation BatchOperation) {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			opCtx := ctx

			if b.timeout > 0 {
				var cancel context.CancelFunc

				opCtx, cancel = context.WithTimeout(ctx, b.timeout)
				defer cancel()
			}

			start := time.Now()
			record, err := b.dispatcher.Dispatch(opCtx, operation.Operation, operation.Request)

			result := &BatchResult{
				ID:       operation.ID,
				Success:  err == nil,
				Record:   record,
				Error:    err,
				Duration: time.Since(start),
			}
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}
		}(index, operation)
	}

	waitGroup.Wait()

	return results
}

// Failed returns the results whose call failed.
func Failed(results []BatchResult) []BatchResult {
	failed := make([]BatchResult, 0)

	for _, result := range results {
		if !result.Success {
			failed = append(failed, result)
		}
	}

	return failed
}
