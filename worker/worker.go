package worker

import (
	"context"
	"sync"

	"github.com/EasterCompany/dex-lipi-service/script"
)

// Converter is the part of translit.Converter the pool needs.
type Converter interface {
	Convert(ctx context.Context, text string, detected script.WritingSystem, target string) string
}

// ConversionJob holds all the necessary data for a single line conversion.
type ConversionJob struct {
	Ctx      context.Context
	Text     string
	Language script.WritingSystem
	Target   string
	// Done receives the converted text, or the original text if the job was
	// canceled before it ran.
	Done func(converted string)
}

// WorkerPool manages a pool of workers and a queue of jobs.
type WorkerPool struct {
	JobQueue   chan ConversionJob
	MaxWorkers int

	converter Converter
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

// New creates a new WorkerPool.
func New(converter Converter, maxWorkers, queueSize int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &WorkerPool{
		JobQueue:   make(chan ConversionJob, queueSize),
		MaxWorkers: maxWorkers,
		converter:  converter,
	}
}

// Start creates and starts the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 1; i <= wp.MaxWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Submit adds a new job to the job queue. It blocks while the queue is full.
func (wp *WorkerPool) Submit(job ConversionJob) {
	wp.JobQueue <- job
}

// Stop closes the queue and waits for queued jobs to drain.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.JobQueue)
	})
	wp.wg.Wait()
}

// worker is a goroutine that continuously processes jobs from the JobQueue.
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()
	for job := range wp.JobQueue {
		processConversion(wp.converter, job)
	}
}

// processConversion runs a single job. A canceled job is completed with its
// original text so the caller's reassembly never waits on it.
func processConversion(c Converter, job ConversionJob) {
	ctx := job.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	out := job.Text
	if ctx.Err() == nil {
		out = c.Convert(ctx, job.Text, job.Language, job.Target)
	}
	if job.Done != nil {
		job.Done(out)
	}
}
