package worker

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/EasterCompany/dex-lipi-service/script"
	"github.com/stretchr/testify/assert"
)

type upperConverter struct{}

func (upperConverter) Convert(_ context.Context, text string, _ script.WritingSystem, target string) string {
	return target + ":" + strings.ToUpper(text)
}

func TestWorkerPool_ProcessesJobs(t *testing.T) {
	wp := New(upperConverter{}, 4, 8)
	wp.Start()
	defer wp.Stop()

	inputs := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	out := make([]string, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		i := i
		wg.Add(1)
		wp.Submit(ConversionJob{
			Ctx:      context.Background(),
			Text:     in,
			Language: script.Tamil,
			Target:   "Latin",
			Done: func(converted string) {
				out[i] = converted
				wg.Done()
			},
		})
	}
	wg.Wait()

	for i, in := range inputs {
		assert.Equal(t, "Latin:"+strings.ToUpper(in), out[i])
	}
}

func TestWorkerPool_CanceledJobKeepsOriginal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan string, 1)
	processConversion(upperConverter{}, ConversionJob{
		Ctx:  ctx,
		Text: "keep",
		Done: func(converted string) { done <- converted },
	})
	assert.Equal(t, "keep", <-done)
}

func TestWorkerPool_StopDrainsQueue(t *testing.T) {
	wp := New(upperConverter{}, 1, 16)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 10; i++ {
		wp.Submit(ConversionJob{
			Ctx:  context.Background(),
			Text: "x",
			Done: func(string) {
				mu.Lock()
				count++
				mu.Unlock()
			},
		})
	}
	wp.Start()
	wp.Stop()
	wp.Stop()
	assert.Equal(t, 10, count)
}

func TestNew_ClampsSizes(t *testing.T) {
	wp := New(upperConverter{}, 0, -1)
	assert.Equal(t, 1, wp.MaxWorkers)
	assert.Equal(t, 0, cap(wp.JobQueue))
}
