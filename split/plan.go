package split

import (
	"fmt"
	"path/filepath"

	"github.com/dendrascience/dirsplit/version"
)

// Plan is the outcome of discovery: the finalized groups and the target
// directory each one is assigned to.
type Plan struct {
	Groups []Group `json:"groups"`
	// Targets are the target directory paths in index order.
	Targets []string `json:"targets"`
	// Assignments[i] is the index into Targets for Groups[i].
	Assignments []int `json:"assignments"`
}

// newPlan deals groups round-robin, starting at the first target.
func newPlan(groups []Group, targets []string) *Plan {
	p := &Plan{
		Groups:      groups,
		Targets:     targets,
		Assignments: make([]int, len(groups)),
	}
	current := 0
	for i := range groups {
		p.Assignments[i] = current
		current = (current + 1) % len(targets)
	}
	return p
}

// FileCount returns the number of files the plan copies.
func (p *Plan) FileCount() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Members)
	}
	return n
}

// GroupsFor returns the groups assigned to the target at index dir.
func (p *Plan) GroupsFor(dir int) []Group {
	var out []Group
	for i, g := range p.Groups {
		if p.Assignments[i] == dir {
			out = append(out, g)
		}
	}
	return out
}

// DirSummary describes the contents planned for one target directory.
type DirSummary struct {
	Path   string `json:"path"`
	Groups int    `json:"groups"`
	Files  int    `json:"files"`
}

// Summary is a compact, serializable description of a plan.
type Summary struct {
	Version     string       `json:"dirsplit_version"`
	Groups      int          `json:"groups"`
	Files       int          `json:"files"`
	Directories []DirSummary `json:"directories"`
}

// Summary totals the plan per target directory.
func (p *Plan) Summary() Summary {
	s := Summary{
		Version:     version.GetVersion(),
		Groups:      len(p.Groups),
		Files:       p.FileCount(),
		Directories: make([]DirSummary, len(p.Targets)),
	}
	for i, t := range p.Targets {
		s.Directories[i].Path = t
	}
	for i, g := range p.Groups {
		d := &s.Directories[p.Assignments[i]]
		d.Groups++
		d.Files += len(g.Members)
	}
	return s
}

func (p *Plan) valid(numDirs int) bool {
	if p == nil || len(p.Targets) != numDirs || len(p.Assignments) != len(p.Groups) {
		return false
	}
	for _, a := range p.Assignments {
		if a < 0 || a >= numDirs {
			return false
		}
	}
	return true
}

// checkNames reports the first pair of files that would be copied to the
// same name in one target directory.
func (p *Plan) checkNames() error {
	seen := make([]map[string]string, len(p.Targets))
	for i, g := range p.Groups {
		dir := p.Assignments[i]
		if seen[dir] == nil {
			seen[dir] = make(map[string]string)
		}
		for _, file := range g.Members {
			name := filepath.Base(file)
			if prev, ok := seen[dir][name]; ok && prev != file {
				return fmt.Errorf("%w: %s and %s both copy to %s", ErrNameCollision, prev, file, filepath.Join(p.Targets[dir], name))
			}
			seen[dir][name] = file
		}
	}
	return nil
}
