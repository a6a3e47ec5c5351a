// Package source implements the Source store: a single append-only
// buffer of encoded symbols backing every Sequence and its Fragments,
// plus the per-position maximum-admissible-oligo-length table that
// every downstream pass consults.
package source

import (
	"fmt"

	"github.com/bioaodp/oligosig/interval"
	"github.com/bioaodp/oligosig/symbol"
)

// SequenceID identifies one logical input sequence (by FASTA name).
type SequenceID int

// FragmentID identifies one contiguous buffer range.
type FragmentID int

// Fragment is a contiguous range of the backing buffer belonging to one
// Sequence, with an ambiguity Cover describing which positions within it
// carry an ambiguous IUPAC code.
type Fragment struct {
	Sequence       SequenceID
	Range          interval.Range[uint64]
	Ambiguous      interval.Cover[uint64]
	ReverseComp    bool
	ForwardPartner FragmentID // set on a ReverseComp fragment, -1 otherwise
}

// Sequence is one logical input (one FASTA record, or a reverse complement
// twin sharing the original's name).
type Sequence struct {
	Name      string
	Fragments []FragmentID
}

// ExcludedFragment records a fragment dropped for exceeding an ambiguity
// threshold; this is non-fatal, and the name is written to the excluded
// list rather than aborting the run.
type ExcludedFragment struct {
	Name   string
	Reason string
}

// Config bundles the thresholds Source applies at endFragment, and the
// oligo-length bounds that drive maxLen population.
type Config struct {
	MinOligoSize        int
	MaxOligoSize         int
	MaxAmbiguities       int // 0 disables the check
	MaxCrowdedAmbiguities int // 0 disables the check
	ReverseComplement    bool
}

// Source is the single append-only byte buffer plus its indices. It is
// single-writer during parsing (Builder methods) and read-only thereafter.
type Source struct {
	cfg Config

	buf []symbol.Symbol

	sequencesByName map[string]SequenceID
	sequences       []Sequence

	fragments []Fragment

	// MaxLen[p] is the maximum admissible oligo length starting at
	// position p in buf; 0 means no oligo may start there.
	MaxLen []int

	Excluded []ExcludedFragment

	// Targets maps a display name to its Target (name and member ids):
	// one singleton target per sequence plus one per non-trivial phylogeny
	// group (populated by phylo.BuildTargets, see phylo package).
	Targets map[string]Target
}

// Target is an immutable named set of Sequence ids.
type Target struct {
	Name    string
	Members []SequenceID
}

// New returns an empty Source ready to accept Builder events.
func New(cfg Config) *Source {
	return &Source{
		cfg:             cfg,
		sequencesByName: make(map[string]SequenceID),
		Targets:         make(map[string]Target),
	}
}

// Len returns the number of symbols currently in the backing buffer.
func (s *Source) Len() int { return len(s.buf) }

// At returns the symbol at buffer position p.
func (s *Source) At(p uint64) symbol.Symbol { return s.buf[p] }

// Slice returns the symbols in [lo,hi).
func (s *Source) Slice(r interval.Range[uint64]) []symbol.Symbol {
	return s.buf[r.Lo:r.Hi]
}

// Sequence looks up a registered sequence by id.
func (s *Source) Sequence(id SequenceID) *Sequence { return &s.sequences[id] }

// SequenceByName looks up a sequence by its FASTA name.
func (s *Source) SequenceByName(name string) (SequenceID, bool) {
	id, ok := s.sequencesByName[name]
	return id, ok
}

// NumSequences returns the number of registered sequences.
func (s *Source) NumSequences() int { return len(s.sequences) }

// Fragment looks up a registered fragment by id.
func (s *Source) Fragment(id FragmentID) *Fragment { return &s.fragments[id] }

// NumFragments returns the number of registered fragments.
func (s *Source) NumFragments() int { return len(s.fragments) }

// builder accumulates the in-progress fragment between beginFragment and
// endFragment.
type builder struct {
	name      string
	file      string
	start     uint64
	ambiguous interval.Cover[uint64]
}

// Builder drives Source construction from a streaming parser's events:
// beginFragment/appendRun/endFragment/finish.
type Builder struct {
	src *Source
	cur *builder
}

// NewBuilder returns a Builder writing into src.
func NewBuilder(src *Source) *Builder {
	return &Builder{src: src}
}

// BeginFragment starts a new fragment for the sequence named name, read
// from file (used only for error diagnostics).
func (b *Builder) BeginFragment(name, file string) error {
	if b.cur != nil {
		return fmt.Errorf("source: beginFragment %q called while %q still open", name, b.cur.name)
	}
	b.cur = &builder{name: name, file: file, start: uint64(len(b.src.buf))}
	return nil
}

// AppendRun appends decoded symbols to the current fragment, recording
// the position of every ambiguous symbol in the fragment's ambiguity
// cover; callers may pass one symbol at a time or any longer run.
func (b *Builder) AppendRun(syms []symbol.Symbol) error {
	if b.cur == nil {
		return fmt.Errorf("source: appendRun called with no open fragment")
	}
	start := uint64(len(b.src.buf))
	for i, sym := range syms {
		if sym == symbol.Invalid {
			return fmt.Errorf("source: invalid IUPAC symbol at position %d of fragment %q", i, b.cur.name)
		}
		if sym.IsAmbiguous() {
			b.cur.ambiguous.Insert(interval.Range[uint64]{Lo: start + uint64(i), Hi: start + uint64(i) + 1})
		}
		b.src.buf = append(b.src.buf, sym)
	}
	return nil
}

// EndFragment closes the current fragment, applying the ambiguity
// threshold filter and registering the fragment and its sequence.
func (b *Builder) EndFragment() error {
	if b.cur == nil {
		return fmt.Errorf("source: endFragment called with no open fragment")
	}
	cur := b.cur
	b.cur = nil

	full := interval.Range[uint64]{Lo: cur.start, Hi: uint64(len(b.src.buf))}
	cur.ambiguous.Universe = full

	if excluded, reason := b.src.shouldExclude(cur.ambiguous, full); excluded {
		b.src.Excluded = append(b.src.Excluded, ExcludedFragment{Name: cur.name, Reason: reason})
		b.src.buf = b.src.buf[:cur.start]
		return nil
	}

	b.src.extendMaxLen(cur.ambiguous, full)

	fid := b.src.registerFragment(Fragment{Range: full, Ambiguous: cur.ambiguous}, cur.name)

	if b.src.cfg.ReverseComplement {
		b.src.appendReverseComplement(fid, cur.name)
	}
	return nil
}

// Finish closes the builder; there is no outstanding per-source state to
// flush beyond what EndFragment already committed, but Finish exists to
// mirror the parser event stream and to catch an unclosed fragment.
func (b *Builder) Finish() error {
	if b.cur != nil {
		return fmt.Errorf("source: finish called with unclosed fragment %q", b.cur.name)
	}
	return nil
}

func (s *Source) shouldExclude(ambiguous interval.Cover[uint64], full interval.Range[uint64]) (bool, string) {
	if s.cfg.MaxAmbiguities > 0 && int(ambiguous.Length()) > s.cfg.MaxAmbiguities {
		return true, fmt.Sprintf("exceeds max-ambiguities=%d", s.cfg.MaxAmbiguities)
	}
	if s.cfg.MaxCrowdedAmbiguities > 0 {
		w := ambiguous.Window()
		var maxRun uint64
		window := uint64(s.cfg.MaxOligoSize)
		var sum uint64
		// windowed-max of total ambiguous length in any window of size
		// `window` within full.
		n := len(w)
		prefix := make([]uint64, n+1)
		for i := 0; i < n; i++ {
			covered := uint64(0)
			if w[i] > 0 {
				covered = 1
			}
			prefix[i+1] = prefix[i] + covered
		}
		for i := 0; i+int(window) <= n; i++ {
			sum = prefix[i+int(window)] - prefix[i]
			if sum > maxRun {
				maxRun = sum
			}
		}
		if int(maxRun) > s.cfg.MaxCrowdedAmbiguities {
			return true, fmt.Sprintf("exceeds max-crowded-ambiguities=%d", s.cfg.MaxCrowdedAmbiguities)
		}
	}
	return false, ""
}

// extendMaxLen grows MaxLen to cover the new fragment, populating it from
// the complement of the ambiguity cover: a position p may start an oligo
// of length up to the distance to the next ambiguous position or fragment
// end, capped at MaxOligoSize, and only recorded when a minimum-size
// window fits.
func (s *Source) extendMaxLen(ambiguous interval.Cover[uint64], full interval.Range[uint64]) {
	need := int(full.Hi)
	if len(s.MaxLen) < need {
		grown := make([]int, need)
		copy(grown, s.MaxLen)
		s.MaxLen = grown
	}

	unambiguous := ambiguous.Complement()
	for _, r := range unambiguous.Ranges {
		n := int(r.Size())
		for i := 0; i < n; i++ {
			remaining := n - i
			if remaining < s.cfg.MinOligoSize {
				break
			}
			l := remaining
			if l > s.cfg.MaxOligoSize {
				l = s.cfg.MaxOligoSize
			}
			s.MaxLen[int(r.Lo)+i] = l
		}
	}
}

func (s *Source) registerFragment(f Fragment, name string) FragmentID {
	id, ok := s.sequencesByName[name]
	if !ok {
		id = SequenceID(len(s.sequences))
		s.sequences = append(s.sequences, Sequence{Name: name})
		s.sequencesByName[name] = id
	}
	f.Sequence = id
	f.ForwardPartner = -1
	fid := FragmentID(len(s.fragments))
	s.fragments = append(s.fragments, f)
	s.sequences[id].Fragments = append(s.sequences[id].Fragments, fid)
	return fid
}

// appendReverseComplement appends the reverse complement of the fragment
// identified by fid immediately after it in the buffer, flips its
// ambiguity cover, and registers a second fragment on the same sequence.
func (s *Source) appendReverseComplement(fid FragmentID, name string) {
	orig := s.fragments[fid]
	n := orig.Range.Size()
	start := uint64(len(s.buf))

	rc := make([]symbol.Symbol, n)
	for i := uint64(0); i < n; i++ {
		rc[n-1-i] = symbol.Complement(s.buf[orig.Range.Lo+i])
	}
	s.buf = append(s.buf, rc...)

	full := interval.Range[uint64]{Lo: start, Hi: start + n}
	flippedAmbig := orig.Ambiguous.Flip()
	flippedAmbig.Universe = full
	// Flip() above flips within orig's own universe, so its ranges are
	// positions in orig's range; rebase them onto the new fragment's range.
	rebased := interval.NewCover[uint64](full)
	for _, r := range flippedAmbig.Ranges {
		offset := r.Lo - orig.Ambiguous.Universe.Lo
		width := r.Size()
		rebased.Insert(interval.Range[uint64]{Lo: start + offset, Hi: start + offset + width})
	}

	s.extendMaxLen(rebased, full)

	rcFid := s.registerFragment(Fragment{Range: full, Ambiguous: rebased, ReverseComp: true, ForwardPartner: fid}, name)
	_ = rcFid
}
