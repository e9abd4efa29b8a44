package result

import "sort"

// SuiteGroup is one suite's records in execution order.
type SuiteGroup struct {
	Suite   string
	Records []Record
}

// GroupBySuite partitions records into suite-named groups. Records keep
// execution-index order within each group, and groups appear in the
// order their suite was first seen across the whole run.
func GroupBySuite(records []Record) []SuiteGroup {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sortByIndex(sorted)

	var (
		groups  []SuiteGroup
		bySuite = make(map[string]int)
	)

	for _, rec := range sorted {
		pos, seen := bySuite[rec.Suite]
		if !seen {
			pos = len(groups)
			bySuite[rec.Suite] = pos
			groups = append(groups, SuiteGroup{Suite: rec.Suite})
		}

		groups[pos].Records = append(groups[pos].Records, rec)
	}

	return groups
}

func sortByIndex(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Index < records[j].Index
	})
}
