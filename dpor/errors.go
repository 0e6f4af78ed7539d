package dpor

import "errors"

var (
	// ErrThreadOutOfRange is returned when a reported thread id is not in
	// [0, numThreads).
	ErrThreadOutOfRange = errors.New("thread id out of range")
	// ErrThreadFinished is returned when an operation targets a thread
	// that already finished.
	ErrThreadFinished = errors.New("thread already finished")
	// ErrThreadNotFinished is returned for a join on a thread that has
	// not finished yet.
	ErrThreadNotFinished = errors.New("joined thread has not finished")
	// ErrUnknownLock is the diagnostic for releasing a lock that was
	// never acquired. The release clock is still recorded.
	ErrUnknownLock = errors.New("release of a lock that was never acquired")
	// ErrInvalidConfig is returned by New for an unusable configuration.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)
