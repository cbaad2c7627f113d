package zonedata

import (
	"sync"
)

// Getter supports atomically switching zone generations on the fly - this occurs most
// often due to zone reloads. All query access should go via Getter.Current() and
// go-routines should not hold the returned generation for longer than a single set of
// related accesses (such as an SOA query which might also read NS and address RRs).
//
// The Getter exists because a generation is read-only once published, so rather than
// having update capabilities generations are simply replaced. Current() takes a
// reference on the caller's behalf; it is the caller's Release() that lets a
// superseded generation finally reclaim, which is the only synchronization between
// readers and reloads.
type Getter struct {
	mu sync.RWMutex
	zd *ZoneData
}

// NewGetter creates a Getter, optionally seeded with an initial generation whose
// reference the Getter adopts. Current() returns nil until a generation has been
// supplied, either here or via Replace().
func NewGetter(zd *ZoneData) *Getter {
	return &Getter{zd: zd}
}

// Replace installs newZD as the current generation, adopting the caller's reference
// (typically the one Build() returned). The previous generation loses the Getter's
// reference and reclaims once the last in-flight reader releases it. Replace can be
// called with a nil replacement pointer, in which case Replace() does nothing.
func (t *Getter) Replace(newZD *ZoneData) {
	if newZD == nil {
		return
	}
	t.mu.Lock()
	old := t.zd
	t.zd = newZD
	t.mu.Unlock()

	if old != nil {
		old.Release()
	}
}

// Current returns the current generation with a reference already taken, or nil if no
// generation has been installed yet. The caller must Release() it when done reading.
func (t *Getter) Current() *ZoneData {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.zd == nil {
		return nil
	}

	return t.zd.Acquire()
}
