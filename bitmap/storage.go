package bitmap

import (
	"sync/atomic"

	"github.com/hattajr/polars/internal/metrics"
)

// storage is the refcounted byte buffer shared by every Bitmap view into it.
// The count tracks live handles: it starts at 1 for the creating handle and is
// incremented whenever a new view (clone, split half) is created. Go has no
// destructor to decrement it when a handle is collected, so a buffer that was
// ever shared stays shared for ownership tests. That only ever forces a copy
// on the clone-on-write path; it never permits aliased mutation.
type storage struct {
	buf  []byte
	refs atomic.Int64
}

func newStorage(buf []byte, origin string) *storage {
	s := &storage{buf: buf}
	s.refs.Store(1)
	metrics.BitmapAllocationsTotal.WithLabelValues(origin).Inc()
	return s
}

func (s *storage) retain() {
	s.refs.Add(1)
}

// unique reports whether exactly one handle references the buffer.
func (s *storage) unique() bool {
	return s.refs.Load() == 1
}
