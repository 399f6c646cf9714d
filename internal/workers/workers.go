package workers

type Workers struct {
	workers []Worker
}

// NewWorkers aggregates the given workers into a single [Workers] runner.
func NewWorkers(list ...Worker) *Workers {
	return &Workers{workers: list}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
