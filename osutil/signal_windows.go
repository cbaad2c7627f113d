package osutil

import (
	"os"
	"os/signal"
)

// Windows only really has Interrupt, so reload and report are unavailable and their
// predicates never match.

func SignalNotify(c chan os.Signal) {
	signal.Notify(c, os.Interrupt)
}

func IsSignalHUP(s os.Signal) bool {
	return false
}

func IsSignalTERM(s os.Signal) bool {
	return false
}

func IsSignalINT(s os.Signal) bool {
	return s == os.Interrupt
}

func IsSignalUSR1(s os.Signal) bool {
	return false
}
