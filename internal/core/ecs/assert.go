//go:build !ecsdebug

package ecs

// debugChecks gates contract assertions. Build with -tags ecsdebug to enable.
const debugChecks = false
