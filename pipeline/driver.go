package pipeline

import (
	"github.com/bioaodp/oligosig/cluster"
	"github.com/bioaodp/oligosig/fold"
	"github.com/bioaodp/oligosig/internal/apperr"
	"github.com/bioaodp/oligosig/internal/applog"
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/trie"
)

// Config bundles the knobs the driver needs beyond what Source.Config
// already carries. The melting filter and homopolymer/SNP passes are
// all optional.
type Config struct {
	Workers int

	EnableMelting bool
	MaxHomopolymerRun int // 0 disables filterHomolo
	EnableSmallDiff    bool

	Engine *fold.Engine
}

// Driver runs the fixed signature-discovery stage order over a built
// Source, producing a finalized Container (trie) and Encoder (clusters)
// ready for collectMatches/sortMatches and the matcher/formatters
// downstream.
type Driver struct {
	cfg    Config
	log    *applog.Logger
	src    *source.Source
	trie   *trie.Container
	enc    *cluster.Encoder
	result []trie.Match
}

// New returns a Driver for src, using minOligo as the trie's minimum
// signature length.
func New(src *source.Source, minOligo int, cfg Config, log *applog.Logger) *Driver {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers()
	}
	return &Driver{
		cfg:  cfg,
		log:  log,
		src:  src,
		trie: trie.NewContainer(minOligo),
		enc:  cluster.NewEncoder(),
	}
}

// Run executes the optional filterMelting, then buildSlices through
// sortMatches (the in-process stages;
// optional reference confirm and the Matcher are separate, later steps
// that consume Matches()). Every stage is a full barrier.
func (d *Driver) Run() error {
	n := d.src.NumFragments()
	if n == 0 {
		return apperr.New(apperr.InvalidInput, "no fragments to index")
	}

	if d.cfg.EnableMelting && d.cfg.Engine != nil {
		d.log.Infof("filterMelting")
		Run(n, d.cfg.Workers, func(i int) {
			f := d.src.Fragment(source.FragmentID(i))
			lo, hi := uint64(f.Range.Lo), uint64(f.Range.Hi)
			d.cfg.Engine.FilterMelting(d.src.Slice(f.Range), d.src.MaxLen[lo:hi], 0)
		})
	}

	d.log.Infof("buildSlices: %d fragments", n)
	Run(n, d.cfg.Workers, func(i int) {
		f := d.src.Fragment(source.FragmentID(i))
		d.trie.BuildSlices(d.src, f.Sequence, *f)
	})

	if d.cfg.MaxHomopolymerRun > 0 {
		d.log.Infof("filterHomolo: max run %d", d.cfg.MaxHomopolymerRun)
		slices := d.trie.Slices()
		Run(len(slices), d.cfg.Workers, func(i int) {
			if sl := slices[i]; sl != nil {
				sl.FilterHomolo(d.src, d.cfg.MaxHomopolymerRun, d.trie.MinOligoLen())
			}
		})
	}

	d.log.Infof("touch (ambiguous marking)")
	Run(n, d.cfg.Workers, func(i int) {
		f := d.src.Fragment(source.FragmentID(i))
		d.trie.Touch(d.src, f.Sequence, *f)
	})

	if d.cfg.EnableSmallDiff {
		d.log.Infof("smallDiff")
		Run(n, d.cfg.Workers, func(i int) {
			f := d.src.Fragment(source.FragmentID(i))
			lo, hi := uint64(f.Range.Lo), uint64(f.Range.Hi)
			for _, sl := range d.trie.Slices() {
				if sl == nil {
					continue
				}
				sl.SmallDiff(d.src, f.Sequence, lo, int(hi-lo), d.trie.MinOligoLen())
			}
		})
	}

	d.log.Infof("encodeClusters")
	slices := d.trie.Slices()
	for _, sl := range slices {
		if sl == nil {
			continue
		}
		sl.EncodeClusters(func(occ map[source.SequenceID]struct{}) {
			d.enc.Register(occ)
		})
	}
	lookup := d.enc.Finalize()
	d.log.Infof("collectClusters: %d clusters", d.enc.NumClusters())

	Run(len(slices), d.cfg.Workers, func(i int) {
		if sl := slices[i]; sl != nil {
			sl.CollectClusters(lookup)
		}
	})

	d.log.Infof("collectMatches")
	var mu matchCollector
	Run(len(slices), d.cfg.Workers, func(i int) {
		if sl := slices[i]; sl != nil {
			sl.CollectMatches(mu.append)
		}
	})
	d.result = mu.sortMatches()
	return nil
}

// Matches returns the finalized, sorted signature records from the last
// Run, ready for reference confirm and the Matcher.
func (d *Driver) Matches() []trie.Match { return d.result }

// Encoder exposes the cluster encoder so callers can resolve ClusterID
// back to member sequences for formatting.
func (d *Driver) Encoder() *cluster.Encoder { return d.enc }

// Container exposes the built trie so a Matcher can query it directly.
func (d *Driver) Container() *trie.Container { return d.trie }
