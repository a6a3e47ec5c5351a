package main

import (
	"github.com/bioaodp/oligosig/bio/taxonomy"
	"github.com/bioaodp/oligosig/cluster"
	"github.com/bioaodp/oligosig/format"
	"github.com/bioaodp/oligosig/reference"
	"github.com/bioaodp/oligosig/source"
)

// confirmSignatures drops any signature whose cluster mixes member
// sequences of more than one known species: a clean signature should
// discriminate a single species (or an explicit clade target), so a
// cluster straddling two taxonomy entries is treated as a false positive
// that slipped past the trie passes. Confirmed (reference-id, cluster-id,
// species) entries are stored in cache; on a later run a cached species
// that differs from the taxonomy's marks the cluster inconsistent. The
// taxonomy table is consulted on every run, cache or not.
func confirmSignatures(src *source.Source, enc *cluster.Encoder, taxTable taxonomy.Table, cache *reference.Cache, sigs []format.Signature) ([]format.Signature, error) {
	if taxTable == nil {
		return sigs, nil
	}

	species := make(map[cluster.ID]string)
	consistent := make(map[cluster.ID]bool)

	out := sigs[:0]
	for _, sig := range sigs {
		id := cluster.ID(sig.ClusterID)
		ok, known := consistent[id]
		if !known {
			ok = true
			for _, member := range enc.Members(id) {
				seq := src.Sequence(member)
				rec, found := taxTable[seq.Name]
				if !found {
					continue
				}
				if cache != nil {
					if cached, hit, err := cache.Lookup(seq.Name, sig.ClusterID); err != nil {
						return nil, err
					} else if hit && cached != rec.Species {
						ok = false
						break
					}
				}
				if prev, seen := species[id]; seen && prev != rec.Species {
					ok = false
					break
				}
				species[id] = rec.Species
				if cache != nil {
					if err := cache.Store(seq.Name, sig.ClusterID, rec.Species); err != nil {
						return nil, err
					}
				}
			}
			consistent[id] = ok
		}
		if ok {
			out = append(out, sig)
		}
	}
	return out, nil
}
