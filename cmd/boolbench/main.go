// boolbench drives workloads against the boolean column primitive: building
// arrays, iterating them null-aware, slicing, and exercising the
// clone-on-write path. Useful for eyeballing throughput and for watching the
// library's Prometheus counters under load.
package main

import (
	"flag"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hattajr/polars/array"
	"github.com/hattajr/polars/bitmap"
	"github.com/hattajr/polars/internal/logging"
)

var (
	rows         = flag.Int("rows", 1_000_000, "Number of slots per array")
	nullFraction = flag.Float64("null-fraction", 0.1, "Fraction of slots that are null")
	iterations   = flag.Int("iterations", 10, "Number of times to run the operation")
	op           = flag.String("op", "iterate", "Operation to benchmark: 'build', 'iterate', 'slice' or 'cow'")
	seed         = flag.Int64("seed", 42, "PRNG seed for the generated column")
)

func main() {
	flag.Parse()

	// .env is optional; real environments set BOOLBENCH_* directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("BOOLBENCH", &cfg); err != nil {
		os.Stderr.WriteString("failed to process environment: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := ValidateConfig(&cfg); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	if err := ValidateWorkload(*rows, *nullFraction, *iterations); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info("starting metrics server", zap.String("address", cfg.MetricsAddr))
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("starting workload",
		zap.String("op", *op),
		zap.Int("rows", *rows),
		zap.Float64("null_fraction", *nullFraction),
		zap.Int("iterations", *iterations),
	)

	rng := rand.New(rand.NewSource(*seed))
	arr := buildArray(rng, *rows, *nullFraction)

	start := time.Now()
	var checksum int
	for i := 0; i < *iterations; i++ {
		switch *op {
		case "build":
			arr = buildArray(rng, *rows, *nullFraction)
			checksum += arr.NullCount()
		case "iterate":
			checksum += countTrue(arr)
		case "slice":
			checksum += sliceWalk(arr)
		case "cow":
			checksum += cowInvert(arr)
		default:
			logger.Error("unknown operation", zap.String("op", *op))
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	logger.Info("workload finished",
		zap.String("op", *op),
		zap.Duration("elapsed", elapsed),
		zap.Duration("per_iteration", elapsed/time.Duration(*iterations)),
		zap.Int("checksum", checksum),
		zap.Int("null_count", arr.NullCount()),
	)
}

func buildArray(rng *rand.Rand, rows int, nullFraction float64) *array.BooleanArray {
	m := array.NewMutableBooleanArrayWithCapacity(rows)
	for i := 0; i < rows; i++ {
		if rng.Float64() < nullFraction {
			m.AppendNull()
		} else {
			m.Append(rng.Intn(2) == 1)
		}
	}
	return m.Freeze()
}

func countTrue(arr *array.BooleanArray) int {
	n := 0
	it := arr.Iter()
	for {
		nb, ok := it.Next()
		if !ok {
			return n
		}
		if nb.Valid && nb.Bool {
			n++
		}
	}
}

// sliceWalk slices the array into ten windows and sums their true-and-valid
// populations through the zero-copy path.
func sliceWalk(arr *array.BooleanArray) int {
	n := 0
	window := arr.Len() / 10
	if window == 0 {
		window = arr.Len()
	}
	for offset := 0; offset+window <= arr.Len(); offset += window {
		view := arr.Sliced(offset, window)
		n += view.TrueAndValid().SetBits()
	}
	return n
}

// cowInvert flips every value bit under the clone-on-write discipline. The
// source array keeps a handle on the buffer, so each iteration pays for one
// full copy; the polars_bitmap_cow_copies_total counter tracks it.
func cowInvert(arr *array.BooleanArray) int {
	work := arr.Clone()
	work.ApplyValuesMut(func(m *bitmap.MutableBitmap) {
		for i := 0; i < m.Len(); i++ {
			m.Set(i, !m.Get(i))
		}
	})
	return work.TrueAndValid().SetBits()
}
