package ecs

import "fmt"

// assertf panics with a contract violation message. Callers guard it with
// debugChecks so release builds compile it away.
func assertf(ok bool, format string, args ...any) {
	if !ok {
		panic("ecs: " + fmt.Sprintf(format, args...))
	}
}
