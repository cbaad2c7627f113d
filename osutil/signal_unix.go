//go:build !windows
// +build !windows

package osutil

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalNotify registers the signals the daemon acts on: terminate, reload and
// report. Anything else keeps its default disposition.
func SignalNotify(c chan os.Signal) {
	signal.Notify(c, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGUSR1)
}

// IsSignalHUP returns true if the supplied signal is SIGHUP. Always false on Windows.
func IsSignalHUP(s os.Signal) bool {
	return s == syscall.SIGHUP
}

// IsSignalTERM returns true if the supplied signal is SIGTERM. Always false on Windows.
func IsSignalTERM(s os.Signal) bool {
	return s == syscall.SIGTERM
}

// IsSignalINT returns true if the supplied signal is SIGINT.
func IsSignalINT(s os.Signal) bool {
	return s == os.Interrupt
}

// IsSignalUSR1 returns true if the supplied signal is SIGUSR1. Always false on Windows.
func IsSignalUSR1(s os.Signal) bool {
	return s == syscall.SIGUSR1
}
