// Package goroutine launches background work that must never take the process down.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"edulearn/internal/shared/logger"
)

// SafeGo runs fn in a goroutine and logs, rather than propagates, a panic.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// SafeGoWithTimeout is SafeGo for work that needs its own deadline, detached
// from the request that triggered it.
func SafeGoWithTimeout(log logger.Interface, name string, timeout time.Duration, fn func(ctx context.Context)) {
	SafeGo(log, name, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		fn(ctx)
	})
}
