package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for the tournament sweep
const (
	LogMsgSweepStarting        = "Tournament sweep starting"
	LogMsgSweepCompleted       = "Tournament sweep completed"
	LogMsgSweepListFailed      = "Failed to list ended tournaments"
	LogMsgSweepCloseFailed     = "Failed to close ended tournament"
	LogMsgSweepDistributeError = "Failed to distribute prizes"
	LogMsgSweepClosed          = "Closed ended tournament"
	LogMsgSweepDistributed     = "Distributed prizes for tournament"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
