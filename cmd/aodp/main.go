// Command aodp discovers oligonucleotide signatures across a set of FASTA
// sequence files: it builds the trie over every fragment, runs the
// optional melting/homopolymer/SNP filters, collects per-cluster matches,
// and renders them through one or more output formatters.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bioaodp/oligosig/bio/fasta"
	"github.com/bioaodp/oligosig/bio/newick"
	"github.com/bioaodp/oligosig/bio/taxonomy"
	"github.com/bioaodp/oligosig/fold"
	"github.com/bioaodp/oligosig/format"
	"github.com/bioaodp/oligosig/internal/apperr"
	"github.com/bioaodp/oligosig/internal/applog"
	"github.com/bioaodp/oligosig/match"
	"github.com/bioaodp/oligosig/phylo"
	"github.com/bioaodp/oligosig/pipeline"
	"github.com/bioaodp/oligosig/reference"
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/thermo"
)

var (
	flagConfigFile      = flag.String("config", "", "YAML file supplying defaults for any other flag.")
	flagOligoSize       = flag.String("oligo-size", "12-48", "Signature length range in bp, min[-max].")
	flagMaxAmbig        = flag.Int("max-ambiguities", 0, "Reject a fragment with more than N ambiguous bases (0 disables).")
	flagMaxCrowdedAmbig = flag.Int("max-crowded-ambiguities", 0, "Reject a fragment with more than N ambiguous bases in any oligo-sized window (0 disables).")
	flagMaxHomolo       = flag.Int("max-homolo", 0, "Prune oligos containing a homopolymer run longer than N (0 disables).")
	flagMaxMelting      = flag.String("max-melting", "", "Drop oligos whose predicted Tm (Celsius) exceeds this value.")
	flagSalt            = flag.Float64("salt", 0.1, "Na+ molarity for the melting-temperature model (0.05-1.1).")
	flagStrand          = flag.Float64("strand", 1, "Total strand concentration in mM for the melting-temperature model (0.01-100).")
	flagIgnoreSNP       = flag.Bool("ignore-SNP", false, "Enable the smallDiff pass, collapsing single-base variants.")
	flagAmbiguousOligos = flag.String("ambiguous-oligos", "no", "yes|no: permit ambiguous signatures (incompatible with --max-melting).")
	flagReverseComp     = flag.Bool("reverse-complement", false, "Also index the reverse complement of every sequence.")
	flagTreeFile        = flag.String("tree-file", "", "Newick phylogeny grouping sequences into clade targets.")
	flagOutgroupFile    = flag.String("outgroup-file", "", "List of target-name substrings to exclude.")
	flagIsolationFile   = flag.String("isolation-file", "", "List of target-name substrings to keep exclusively.")
	flagDatabase        = flag.String("database", "", "SQLite cache of confirmed (reference, cluster) pairs.")
	flagTaxonomyFile    = flag.String("taxonomy", "", "Tab-separated reference-id/lineage table for confirm.")
	flagMatchFile       = flag.String("match", "", "FASTA file of query sequences to classify against the built index.")
	flagFind            = flag.String("find", "", "Literal oligo string to look up directly in the built trie, bypassing the Matcher.")
	flagThreads         = flag.Int("threads", 0, "Worker pool size (0 uses logical-cores-1).")

	flagStrings         = flag.Bool("strings", false, "Write each signature's literal sequence.")
	flagPositions       = flag.Bool("positions", false, "Write each signature's source position.")
	flagRanges          = flag.Bool("ranges", false, "Write each signature's source range.")
	flagFASTA           = flag.Bool("fasta", false, "Write signatures as FASTA records.")
	flagGFF             = flag.Bool("gff", false, "Write signatures as GFF3 features.")
	flagTab             = flag.Bool("tab", false, "Write signatures as a tab-separated table.")
	flagNewickOut       = flag.Bool("newick", false, "Write the parsed phylogeny back out.")
	flagNodeList        = flag.Bool("node-list", false, "Write the list of named targets.")
	flagLineage         = flag.Bool("lineage", false, "Write each signature's taxonomic lineage, if --taxonomy was given.")
	flagFold            = flag.Bool("fold", false, "Write each signature's fold parameters (DeltaG/DeltaH/DeltaS/Tm).")
	flagClusterList     = flag.Bool("cluster-list", false, "Write one line per cluster with its member names.")
	flagClusterOligos   = flag.Bool("cluster-oligos", false, "Write one line per cluster with its signature oligos.")
	flagSequenceClusters = flag.Bool("sequence-clusters", false, "Write one line per sequence with its cluster memberships.")
	flagMetrics         = flag.Bool("metrics", false, "Write summary counts (fragments, clusters, matches).")
	flagSource          = flag.Bool("source", false, "Write the assembled source buffer's sequence table.")
	flagMatchOutput     = flag.Bool("match-output", false, "Write --match query results (requires --match).")
	flagCladogram       = flag.Bool("cladogram", false, "Write a plain-text cladogram of targets.")
	flagBasename        = flag.String("basename", "", "Synthesize output file names from this base, one per selected flag.")
	flagClusters        = flag.Bool("clusters", false, "When set with --basename, split cluster-oriented output across per-cluster files.")

	flagVerbose = flag.Bool("verbose", false, "Enable debug-level logging.")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] fasta-file [fasta-file ...]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	applyFileConfig()

	log := applog.Default("aodp")
	if *flagVerbose {
		log.SetVerbose(true)
	}

	if err := run(log); err != nil {
		log.Errorf("%s", err)
		os.Exit(exitCode(err))
	}
}

// applyFileConfig sets every flag from --config that was not given on the
// command line (flag.Visit lists those that were), so an explicit
// command-line flag still wins over the file.
func applyFileConfig() {
	if *flagConfigFile == "" {
		return
	}
	cfg, err := loadFileConfig(*flagConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aodp: reading --config %s: %s\n", *flagConfigFile, err)
		os.Exit(1)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	apply := func(name, value string) {
		if value != "" && !set[name] {
			flag.Set(name, value)
		}
	}
	applyInt := func(name string, value int) {
		if value != 0 && !set[name] {
			flag.Set(name, strconv.Itoa(value))
		}
	}
	applyBool := func(name string, value bool) {
		if value && !set[name] {
			flag.Set(name, "true")
		}
	}

	apply("oligo-size", cfg.OligoSize)
	applyInt("max-ambiguities", cfg.MaxAmbiguities)
	applyInt("max-crowded-ambiguities", cfg.MaxCrowdedAmbiguities)
	applyInt("max-homolo", cfg.MaxHomolo)
	apply("max-melting", cfg.MaxMelting)
	apply("salt", cfg.Salt)
	apply("strand", cfg.Strand)
	applyBool("ignore-SNP", cfg.IgnoreSNP)
	apply("ambiguous-oligos", cfg.AmbiguousOligos)
	applyBool("reverse-complement", cfg.ReverseComplement)
	apply("tree-file", cfg.TreeFile)
	apply("outgroup-file", cfg.OutgroupFile)
	apply("isolation-file", cfg.IsolationFile)
	apply("database", cfg.Database)
	apply("taxonomy", cfg.Taxonomy)
	apply("match", cfg.Match)
	apply("find", cfg.Find)
	applyInt("threads", cfg.Threads)
	apply("basename", cfg.Basename)
}

func exitCode(err error) int {
	var ae *apperr.Error
	if e, ok := err.(*apperr.Error); ok {
		ae = e
	}
	if ae == nil {
		return 1
	}
	switch ae.Kind {
	case apperr.InvalidOption:
		return 2
	default:
		return 1
	}
}

func run(log *applog.Logger) error {
	minOligo, maxOligo, err := parseOligoSize(*flagOligoSize)
	if err != nil {
		return err
	}
	if *flagAmbiguousOligos == "yes" && *flagMaxMelting != "" {
		return apperr.New(apperr.InvalidOption, "--ambiguous-oligos=yes is incompatible with --max-melting")
	}
	if flag.NArg() == 0 {
		return apperr.New(apperr.InvalidOption, "at least one sequence file must be specified")
	}
	if !anyOutputSelected() {
		return apperr.New(apperr.InvalidOption, "at least one output flag must be specified")
	}

	src := source.New(source.Config{
		MinOligoSize:      minOligo,
		MaxOligoSize:      maxOligo,
		MaxAmbiguities:    *flagMaxAmbig,
		MaxCrowdedAmbiguities: *flagMaxCrowdedAmbig,
		ReverseComplement: *flagReverseComp,
	})
	builder := source.NewBuilder(src)
	for _, path := range flag.Args() {
		if err := parseFASTAFile(path, builder); err != nil {
			return err
		}
	}
	if err := builder.Finish(); err != nil {
		return apperr.Wrap(apperr.InvalidInput, err, "finishing source assembly")
	}

	var tree *newick.Node
	if *flagTreeFile != "" {
		text, err := os.ReadFile(*flagTreeFile)
		if err != nil {
			return apperr.Wrap(apperr.InvalidInput, err, "reading tree file %s", *flagTreeFile)
		}
		tree, err = newick.Parse(string(text))
		if err != nil {
			return apperr.Wrap(apperr.InvalidInput, err, "parsing tree file %s", *flagTreeFile)
		}
	}
	phylo.BuildTargets(src, tree)

	if *flagOutgroupFile != "" {
		patterns, err := readListFile(*flagOutgroupFile)
		if err != nil {
			return err
		}
		if err := phylo.FilterOutgroup(src, patterns); err != nil {
			return err
		}
	}
	if *flagIsolationFile != "" {
		patterns, err := readListFile(*flagIsolationFile)
		if err != nil {
			return err
		}
		if err := phylo.FilterOutIsolation(src, patterns); err != nil {
			return err
		}
	}

	cfg := pipeline.Config{
		Workers:           *flagThreads,
		MaxHomopolymerRun: *flagMaxHomolo,
		EnableSmallDiff:   *flagIgnoreSNP,
	}
	if *flagMaxMelting != "" {
		txCelsius, err := strconv.ParseFloat(*flagMaxMelting, 64)
		if err != nil {
			return apperr.Newf(apperr.InvalidOption, "--max-melting=%q is not a number", *flagMaxMelting)
		}
		model := thermo.NewModel(*flagSalt, *flagStrand*1e6)
		cfg.Engine = fold.NewEngine(model, txCelsius)
		cfg.EnableMelting = true
	}

	driver := pipeline.New(src, minOligo, cfg, log)
	if err := driver.Run(); err != nil {
		return err
	}

	if *flagFind != "" {
		if err := runFind(os.Stdout, src, driver, *flagFind); err != nil {
			return err
		}
	}

	var taxTable taxonomy.Table
	if *flagTaxonomyFile != "" {
		f, err := os.Open(*flagTaxonomyFile)
		if err != nil {
			return apperr.Wrap(apperr.InvalidInput, err, "opening taxonomy file %s", *flagTaxonomyFile)
		}
		taxTable, err = taxonomy.Parse(f)
		f.Close()
		if err != nil {
			return apperr.Wrap(apperr.InvalidInput, err, "parsing taxonomy file %s", *flagTaxonomyFile)
		}
	}

	var cache *reference.Cache
	if *flagDatabase != "" {
		c, err := reference.MustOpen(*flagDatabase)
		if err != nil {
			return err
		}
		defer c.Close()
		cache = c
	}
	sigs := format.Expand(driver.Matches(), minOligo)
	sigs, err = confirmSignatures(src, driver.Encoder(), taxTable, cache, sigs)
	if err != nil {
		return err
	}

	var matchResults []match.Result
	if *flagMatchFile != "" {
		matchResults, err = runMatcher(src, driver, maxOligo, *flagMatchFile)
		if err != nil {
			return err
		}
	}

	return writeOutputs(src, driver, sigs, matchResults, tree, taxTable, cfg.Engine)
}

func parseOligoSize(spec string) (min, max int, err error) {
	parts := strings.SplitN(spec, "-", 2)
	min, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, apperr.Newf(apperr.InvalidOption, "--oligo-size=%q: invalid minimum", spec)
	}
	if min < 8 {
		return 0, 0, apperr.Newf(apperr.InvalidOption, "--oligo-size=%q: minimum must be >= 8", spec)
	}
	if len(parts) == 1 {
		return min, min, nil
	}
	max, err = strconv.Atoi(parts[1])
	if err != nil || max < min {
		return 0, 0, apperr.Newf(apperr.InvalidOption, "--oligo-size=%q: invalid maximum", spec)
	}
	return min, max, nil
}

func parseFASTAFile(path string, b *source.Builder) error {
	f, err := os.Open(path)
	if err != nil {
		return apperr.Wrap(apperr.InvalidInput, err, "opening sequence file %s", path)
	}
	defer f.Close()
	if err := fasta.Parse(f, path, b); err != nil {
		return apperr.Wrap(apperr.InvalidInput, err, "parsing sequence file %s", path)
	}
	return nil
}

func readListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "opening list file %s", path)
	}
	defer f.Close()
	list, err := phylo.ReadList(f)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "reading list file %s", path)
	}
	return list, nil
}

func anyOutputSelected() bool {
	return *flagStrings || *flagPositions || *flagRanges || *flagFASTA || *flagGFF ||
		*flagTab || *flagNewickOut || *flagNodeList || *flagLineage || *flagFold ||
		*flagClusterList || *flagClusterOligos || *flagSequenceClusters || *flagMetrics ||
		*flagSource || *flagMatchOutput || *flagCladogram || *flagFind != ""
}
