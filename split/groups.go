package split

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Group is a representative file together with the files that travel
// with it. Members[0] is always the representative.
type Group struct {
	Representative string   `json:"representative"`
	Members        []string `json:"members"`
}

// groupTable collects groups while discovery handlers run concurrently.
type groupTable struct {
	mu     sync.Mutex
	groups map[string][]string
}

func newGroupTable() *groupTable {
	return &groupTable{groups: make(map[string][]string)}
}

// add creates or extends the group keyed by rep in one critical section.
func (t *groupTable) add(rep string, accompanying []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	members, ok := t.groups[rep]
	if !ok {
		members = []string{rep}
	}
	t.groups[rep] = append(members, accompanying...)
}

// finalize returns the groups ordered by representative, with every path
// in at most one group. A path that represents its own group is dropped
// from all others. A path claimed by several groups stays with the one
// whose representative shares its stem (the longest such stem wins), or
// else with the lexically first representative.
func (t *groupTable) finalize() []Group {
	t.mu.Lock()
	defer t.mu.Unlock()

	reps := make([]string, 0, len(t.groups))
	for rep := range t.groups {
		reps = append(reps, rep)
	}
	slices.Sort(reps)

	claims := make(map[string][]string)
	for _, rep := range reps {
		for _, m := range t.groups[rep][1:] {
			if _, isRep := t.groups[m]; isRep {
				continue
			}
			if !slices.Contains(claims[m], rep) {
				claims[m] = append(claims[m], rep)
			}
		}
	}
	owner := make(map[string]string, len(claims))
	for m, claimants := range claims {
		owner[m] = pickOwner(m, claimants)
	}

	out := make([]Group, 0, len(reps))
	for _, rep := range reps {
		members := []string{rep}
		seen := map[string]struct{}{rep: {}}
		for _, m := range t.groups[rep][1:] {
			if _, dup := seen[m]; dup || owner[m] != rep {
				continue
			}
			seen[m] = struct{}{}
			members = append(members, m)
		}
		out = append(out, Group{Representative: rep, Members: members})
	}
	return out
}

// pickOwner chooses among claimants, which are sorted.
func pickOwner(member string, claimants []string) string {
	base := filepath.Base(member)
	best, bestLen := claimants[0], -1
	for _, rep := range claimants {
		s := stem(rep)
		if base != s && !strings.HasPrefix(base, s+".") {
			continue
		}
		if len(s) > bestLen {
			best, bestLen = rep, len(s)
		}
	}
	return best
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
