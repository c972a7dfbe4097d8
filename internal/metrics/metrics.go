// Package metrics exposes Prometheus collectors for buffer lifecycle events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BitmapAllocationsTotal counts backing-buffer allocations by origin.
	BitmapAllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polars_bitmap_allocations_total",
			Help: "Total number of bitmap backing-buffer allocations",
		},
		[]string{"origin"},
	)

	// BitmapCOWCopiesTotal counts full buffer copies forced by shared ownership
	// on the clone-on-write path.
	BitmapCOWCopiesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "polars_bitmap_cow_copies_total",
			Help: "Total number of bitmap copies forced by clone-on-write on shared buffers",
		},
	)

	// BitmapZeroCopyReclaimsTotal counts successful zero-copy conversions of a
	// uniquely owned immutable bitmap back into a mutable one.
	BitmapZeroCopyReclaimsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "polars_bitmap_zero_copy_reclaims_total",
			Help: "Total number of zero-copy immutable-to-mutable bitmap reclaims",
		},
	)

	// ArraysFrozenTotal counts builders frozen into immutable arrays.
	ArraysFrozenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "polars_arrays_frozen_total",
			Help: "Total number of mutable arrays frozen into immutable arrays",
		},
	)
)
