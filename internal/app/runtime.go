package app

import (
	"os"
	"sync"
	"sync/atomic"
)

// CATERFLOW_TEST_MODE=1 short-circuits main() in both binaries so the test
// harness can compile and exercise them without dialing postgres or redis.
const testModeEnv = "CATERFLOW_TEST_MODE"

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

func detectTestMode() {
	testModeFlag.Store(os.Getenv(testModeEnv) == "1")
}

// InTestMode reports whether runtime side effects should be skipped.
func InTestMode() bool {
	testModeOnce.Do(detectTestMode)
	return testModeFlag.Load()
}

// RefreshTestMode re-reads the environment after a test changes it.
func RefreshTestMode() {
	detectTestMode()
}
