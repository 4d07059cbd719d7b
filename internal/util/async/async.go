package async

import (
	"context"
	"errors"
	"fmt"
)

// Future is the pending result of an operation started with Go.
type Future[T any] struct {
	name  string
	done  chan struct{}
	value T
	err   error
}

// Go starts fn in a new goroutine and returns immediately.
// A panic in fn is recovered and reported as the future's error.
func Go[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{
		name: name,
		done: make(chan struct{}),
	}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("panic: %v", r)
			}
		}()
		f.value, f.err = fn(ctx)
	}()

	return f
}

// Name returns the name the future was started with.
func (f *Future[T]) Name() string {
	return f.name
}

// Done is closed once the operation has finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the operation has finished and returns its result.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}

// WaitAll blocks until every future has finished. It never returns early on
// the first failure. Results are returned in the order the futures were
// passed; a failed future leaves the zero value in its slot. All errors are
// joined and each is prefixed with the future's name.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))
	var errs []error

	for i, f := range futures {
		value, err := f.Wait()
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to %s: %w", f.name, err))
			continue
		}
		results[i] = value
	}

	return results, errors.Join(errs...)
}

// Task represents a named asynchronous operation without a result.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel starts all tasks concurrently and waits for every one of them.
// It returns the joined errors of the tasks that failed.
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	futures := make([]*Future[struct{}], len(tasks))
	for i, task := range tasks {
		futures[i] = Go(ctx, task.Name, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, task.Func(ctx)
		})
	}

	_, err := WaitAll(futures...)
	return err
}
