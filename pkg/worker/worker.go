package worker

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/paytrack/ledger-gateway/pkg/logger"
)

type Handler = func(workerIndex int, job interface{})

// Manager is a goroutine-pool job runner. Define the number of internal
// workers, publish jobs with Enqueue, and the pool distributes them. The
// workers never exit on their own; call Exit() to wind them down. The job
// channel is never closed here because it may be shared with other
// producers.
type Manager struct {
	bufferSize     int
	jobChannel     chan interface{}
	numberOfWorker int
	sigTerm        chan os.Signal
	do             Handler
	waiter         *sync.WaitGroup
}

func NewManager(bufferSize, numberOfWorkers int, jobChannel chan interface{}) *Manager {
	if jobChannel == nil {
		jobChannel = make(chan interface{}, bufferSize)
	}
	// buffered so shutdown signals are not lost before workers start
	sigChan := make(chan os.Signal, numberOfWorkers)
	signal.Notify(sigChan, syscall.SIGTERM)

	return &Manager{
		bufferSize:     bufferSize,
		numberOfWorker: numberOfWorkers,
		jobChannel:     jobChannel,
		sigTerm:        sigChan,
		waiter:         &sync.WaitGroup{},
	}
}

func (w *Manager) Pending() int64 {
	if w.jobChannel == nil {
		return 0
	}
	return int64(len(w.jobChannel))
}

func (w *Manager) JobEvents() chan interface{} {
	return w.jobChannel
}

func (w *Manager) SetWorker(handler Handler) {
	w.do = handler
}

// Enqueue publishes a job onto the channel.
func (w *Manager) Enqueue(val interface{}) {
	w.jobChannel <- val
}

// Start runs the workers and blocks until all of them terminate.
func (w *Manager) Start() error {
	w.waiter.Add(w.numberOfWorker)
	for i := 0; i < w.numberOfWorker; i++ {
		go func(index int) {
			for {
				select {
				case job := <-w.jobChannel:
					w.do(index, job)
				case <-w.sigTerm:
					w.waiter.Done()
					return
				}
			}
		}(i)
	}
	w.waiter.Wait()

	return errors.New("workers terminated")
}

// Exit asks every worker to stop after its current job.
func (w *Manager) Exit() {
	logger.Info("worker manager shutting down")
	for i := 0; i < w.numberOfWorker; i++ {
		w.sigTerm <- syscall.SIGTERM
	}
}
