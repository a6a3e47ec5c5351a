package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the shape of --config=file.yaml: every field mirrors a
// flag name and supplies its default, overridable by the same flag given
// on the command line.
type fileConfig struct {
	OligoSize             string `yaml:"oligo-size"`
	MaxAmbiguities        int    `yaml:"max-ambiguities"`
	MaxCrowdedAmbiguities int    `yaml:"max-crowded-ambiguities"`
	MaxHomolo             int    `yaml:"max-homolo"`
	MaxMelting            string `yaml:"max-melting"`
	Salt                  string `yaml:"salt"`
	Strand                string `yaml:"strand"`
	IgnoreSNP             bool   `yaml:"ignore-SNP"`
	AmbiguousOligos       string `yaml:"ambiguous-oligos"`
	ReverseComplement     bool   `yaml:"reverse-complement"`
	TreeFile              string `yaml:"tree-file"`
	OutgroupFile          string `yaml:"outgroup-file"`
	IsolationFile         string `yaml:"isolation-file"`
	Database              string `yaml:"database"`
	Taxonomy              string `yaml:"taxonomy"`
	Match                 string `yaml:"match"`
	Find                  string `yaml:"find"`
	Threads               int    `yaml:"threads"`
	Basename              string `yaml:"basename"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
