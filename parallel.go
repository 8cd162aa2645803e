package tractfilter

import "sync"

// runTrialsParallel calls run for every trial in 0..trials-1 using up to
// numWorkers goroutines. If numWorkers <= 1 it runs sequentially.
//
// Each worker handles a contiguous range of trials and stops at its first
// error. The error returned is the one from the lowest-numbered failing
// trial, matching what a sequential run would return.
func runTrialsParallel(trials, numWorkers int, run func(trial int) error) error {
	if numWorkers <= 1 || trials <= 1 {
		for t := 0; t < trials; t++ {
			if err := run(t); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	trialsPerWorker := (trials + numWorkers - 1) / numWorkers
	errs := make([]error, numWorkers)

	for w := 0; w < numWorkers; w++ {
		start := w * trialsPerWorker
		end := start + trialsPerWorker
		if end > trials {
			end = trials
		}
		if start >= trials {
			break
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for t := start; t < end; t++ {
				if err := run(t); err != nil {
					errs[w] = err
					return
				}
			}
		}(w, start, end)
	}

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
