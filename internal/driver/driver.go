// Package driver sequences the indicator pipeline end to end (spec.md
// §4.7): pass 1 (dictionaries + statistics), pass 2 (row building +
// co-occurrence accumulation), then the top-K selector, streaming the
// result to the JSON emitter. It owns Config and progress logging for
// the whole run, generalizing each cmd/algorithms/*.go main() in the
// teacher repo (open input, accumulate, time each stage, report) into
// one driver that performs two real file passes instead of one.
package driver

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/pc3-labs/recoreco/internal/config"
	"github.com/pc3-labs/recoreco/internal/cooccur"
	"github.com/pc3-labs/recoreco/internal/dictionary"
	"github.com/pc3-labs/recoreco/internal/emit"
	"github.com/pc3-labs/recoreco/internal/ingest"
	"github.com/pc3-labs/recoreco/internal/obslog"
	"github.com/pc3-labs/recoreco/internal/rerrors"
	"github.com/pc3-labs/recoreco/internal/rows"
	"github.com/pc3-labs/recoreco/internal/stats"
	"github.com/pc3-labs/recoreco/internal/telemetry"
	"github.com/pc3-labs/recoreco/internal/topk"
)

// Driver holds all state for one end-to-end run.
type Driver struct {
	cfg     *config.Config
	log     *obslog.Logger
	metrics *telemetry.Metrics

	// CurrentPass is read by the optional debug server's /healthz
	// handler; it is only ever written by the single goroutine running
	// Run, so no synchronization is required beyond happens-before the
	// handler's read (the handler runs on a separate, purely
	// observational goroutine and a torn read of a short string is an
	// acceptable diagnostic inaccuracy, not a correctness issue).
	CurrentPass string
}

// New returns a Driver for one run.
func New(cfg *config.Config, log *obslog.Logger, metrics *telemetry.Metrics) *Driver {
	return &Driver{cfg: cfg, log: log, metrics: metrics}
}

// Run executes pass 1, pass 2, and the top-K selector, writing the final
// NDJSON result to cfg.OutputPath. It never leaves a partial output file:
// results are written to a temp file and renamed into place only on full
// success (spec.md §7).
func (d *Driver) Run(ctx context.Context) error {
	userDict := dictionary.New()
	itemDict := dictionary.New()
	st := stats.New()

	d.CurrentPass = "pass1"
	t0 := time.Now()
	if err := d.runPass1(userDict, itemDict, st); err != nil {
		return err
	}
	pass1Elapsed := time.Since(t0)
	d.log.Info("pass 1 complete: %d interactions, %d users, %d items in %s",
		st.N(), userDict.Size(), itemDict.Size(), pass1Elapsed)
	d.observePassDuration("1", pass1Elapsed)

	rng := d.newRNG()

	d.CurrentPass = "pass2"
	t1 := time.Now()
	matrix := cooccur.New()
	if err := d.runPass2(userDict, itemDict, st, rng, matrix); err != nil {
		return err
	}
	pass2Elapsed := time.Since(t1)
	var nnz int64
	for i := 0; i <= matrix.MaxItemID(); i++ {
		matrix.Neighbors(dictionary.ID(i), func(j dictionary.ID, count int64) { nnz++ })
	}
	d.log.Info("pass 2 complete: %d user rows, %d item count, %d cooccurrence entries in %s",
		matrix.NumRows(), itemDict.Size(), nnz/2, pass2Elapsed)
	d.observePassDuration("2", pass2Elapsed)

	d.CurrentPass = "topk"
	t2 := time.Now()
	results, err := topk.Compute(ctx, matrix, matrix.MaxItemID(), d.cfg.NumIndicators, d.cfg.TopKWorkers)
	if err != nil {
		return fmt.Errorf("top-k selection: %w", err)
	}
	topkElapsed := time.Since(t2)
	d.log.Info("top-k selection complete in %s", topkElapsed)
	d.observePassDuration("topk", topkElapsed)

	if err := d.writeOutput(itemDict, results); err != nil {
		return err
	}
	d.CurrentPass = "done"
	return nil
}

func (d *Driver) runPass1(userDict, itemDict *dictionary.Dictionary, st *stats.Stats) error {
	return ingest.Each(d.cfg.InputPath, func(in ingest.Interaction) error {
		u := userDict.GetOrInsert(in.UserKey)
		i := itemDict.GetOrInsert(in.ItemKey)
		st.Observe(u, i)
		if d.metrics != nil {
			d.metrics.InteractionsTotal.Inc()
		}
		return nil
	})
}

func (d *Driver) runPass2(userDict, itemDict *dictionary.Dictionary, st *stats.Stats, rng *rand.Rand, matrix *cooccur.Matrix) error {
	builder := rows.New(st, d.cfg.InteractionsCapPerUser, d.cfg.InteractionsCapPerItem, rng, func(user dictionary.ID, items []dictionary.ID) error {
		matrix.AddRow(items)
		if d.metrics != nil {
			d.metrics.UserRowsTotal.Inc()
			d.metrics.CooccurrencePairsTotal.Add(float64(len(items) * (len(items) - 1) / 2))
		}
		return nil
	})

	err := ingest.Each(d.cfg.InputPath, func(in ingest.Interaction) error {
		u := userDict.GetOrInsert(in.UserKey)
		i := itemDict.GetOrInsert(in.ItemKey)
		return builder.Add(u, i)
	})
	if err != nil {
		return err
	}
	return builder.Close()
}

func (d *Driver) newRNG() *rand.Rand {
	if d.cfg.Seed != nil {
		seed := uint64(*d.cfg.Seed)
		return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	var seed [2]uint64
	seed[0] = uint64(time.Now().UnixNano())
	seed[1] = uint64(os.Getpid())
	return rand.New(rand.NewPCG(seed[0], seed[1]))
}

func (d *Driver) observePassDuration(pass string, elapsed time.Duration) {
	if d.metrics != nil {
		d.metrics.PassDuration.WithLabelValues(pass).Observe(elapsed.Seconds())
	}
}

func (d *Driver) writeOutput(itemDict *dictionary.Dictionary, results topk.Result) error {
	tmpPath := filepath.Join(filepath.Dir(d.cfg.OutputPath), fmt.Sprintf(".%s.tmp", filepath.Base(d.cfg.OutputPath)))

	w, err := emit.Create(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	writeErr := func() error {
		var failure error
		itemDict.Each(func(id dictionary.ID, key string) {
			if failure != nil {
				return
			}
			cands := results[id]
			keys := make([]string, 0, len(cands))
			for _, c := range cands {
				keys = append(keys, itemDict.Lookup(c.Item))
			}
			if err := w.Write(emit.Record{ForItem: key, IndicatedItems: keys}); err != nil {
				failure = err
			}
		})
		return failure
	}()

	if writeErr != nil {
		w.Abort()
		os.Remove(tmpPath)
		return writeErr
	}
	if err := w.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, d.cfg.OutputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming into place: %v", rerrors.ErrOutputWrite, err)
	}
	return nil
}
