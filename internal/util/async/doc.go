// Package async provides futures and a wait-for-all join barrier.
//
// [Go] starts an operation in its own goroutine and returns a [Future].
// [WaitAll] blocks until every future has finished, successful or not, and
// returns the results in submission order together with all errors joined.
// It is used to dispatch independent provider calls concurrently.
package async
