package zone

import (
	"sort"

	"github.com/jroosing/hydrazone/internal/dns"
)

// RRset is the presentation grouping of records sharing (name, type).
type RRset struct {
	Name      string
	Type      dns.Type
	TTL       uint32
	Records   []RRsetRecord
	Flattened bool
}

// RRsetRecord is one member of an RRset.
type RRsetRecord struct {
	Content  string
	Disabled bool
	Priority *int
}

type rrsetKey struct {
	name string
	typ  dns.Type
}

// GroupRRsets groups records by (name, type). The RRset TTL is the lowest
// member TTL. Output is ordered by name with the SOA and NS sets of a name
// first, then by type code.
func GroupRRsets(records []Record) []RRset {
	index := make(map[rrsetKey]int, len(records))
	sets := make([]RRset, 0, len(records))

	for _, r := range records {
		key := rrsetKey{name: dns.NormalizeName(r.Name), typ: r.Type}
		i, ok := index[key]
		if !ok {
			i = len(sets)
			index[key] = i
			sets = append(sets, RRset{Name: key.name, Type: r.Type, TTL: r.TTL})
		}
		set := &sets[i]
		if r.TTL < set.TTL {
			set.TTL = r.TTL
		}
		set.Flattened = set.Flattened || r.Flattened
		set.Records = append(set.Records, RRsetRecord{
			Content:  r.Content,
			Disabled: r.Disabled,
			Priority: r.Priority,
		})
	}

	sort.SliceStable(sets, func(i, j int) bool {
		if sets[i].Name != sets[j].Name {
			return sets[i].Name < sets[j].Name
		}
		return typeRank(sets[i].Type) < typeRank(sets[j].Type)
	})
	return sets
}

func typeRank(t dns.Type) int {
	switch t {
	case dns.TypeSOA:
		return -2
	case dns.TypeNS:
		return -1
	}
	return int(t)
}
