package zonedata

import (
	"errors"
)

// LoadAction produces a fully built generation, typically by running a Builder over a
// master file or transfer stream. Returning an error - or nil without an error -
// aborts the reload; the generation currently serving is untouched either way.
type LoadAction func() (*ZoneData, error)

// Writer drives a two-phase zone reload: Load() builds the replacement generation
// off to the side, Install() swaps it in atomically, Cleanup() releases whatever the
// writer still holds. Keeping the phases separate lets a coordinator run many loads
// concurrently and serialize only the installs, and means a failed Load simply never
// reaches Install.
//
// A Writer is single-use and not concurrency safe; each reload gets its own.
type Writer struct {
	getter *Getter
	action LoadAction

	zd         *ZoneData
	loadCalled bool
	installed  bool
}

// NewWriter prepares a reload of the zone served through getter. Both arguments are
// construction preconditions, so a nil is a programming error and panics.
func NewWriter(getter *Getter, action LoadAction) *Writer {
	if getter == nil || action == nil {
		panic("zonedata: NewWriter() requires a Getter and a LoadAction")
	}

	return &Writer{getter: getter, action: action}
}

// Load runs the load action. It must be called exactly once; a second call is an
// error regardless of how the first fared. An action error is returned as-is so the
// caller can report why the reload was abandoned.
func (t *Writer) Load() error {
	if t.loadCalled {
		return errors.New("zonedata: Writer.Load() called twice")
	}
	t.loadCalled = true

	zd, err := t.action()
	if err != nil {
		return err
	}
	if zd == nil {
		return errors.New("zonedata: load action returned no zone data")
	}

	zd.publish() // Normally already done by Build(), but immutability is ours to guarantee
	t.zd = zd

	return nil
}

// Install publishes the loaded generation through the Getter. Only valid after a
// successful Load and only once.
func (t *Writer) Install() error {
	if t.installed {
		return errors.New("zonedata: Writer.Install() called twice")
	}
	if t.zd == nil {
		return errors.New("zonedata: Writer.Install() without a successful Load()")
	}

	t.getter.Replace(t.zd) // Replace adopts the generation's reference
	t.zd = nil
	t.installed = true

	return nil
}

// Cleanup releases anything the writer still holds. Safe to call at any point, any
// number of times; after a successful Install there is nothing left to do.
func (t *Writer) Cleanup() {
	if t.zd != nil {
		t.zd.Release()
		t.zd = nil
	}
}
