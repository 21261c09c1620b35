package walk

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
)

// Entry is a single path discovered during a walk.
type Entry struct {
	Path  string      // absolute path
	Rel   string      // path relative to the walk root
	Type  fs.FileMode // type bits of the link target when Link is set
	Link  bool        // the path itself is a symbolic link
	Depth int         // the root has depth 0
}

// Name returns the final path segment.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// IsDir reports whether the entry resolves to a directory.
func (e Entry) IsDir() bool {
	return e.Type.IsDir()
}

// IsRegular reports whether the entry resolves to a regular file.
func (e Entry) IsRegular() bool {
	return e.Type.IsRegular()
}

// Entries walks root depth-first in pre-order and yields every entry that
// survives pruning. Directory children are visited in lexical order.
// Symbolic links are followed; a link that resolves to one of its own
// ancestors is skipped, as is any entry that cannot be stat'ed or read.
// The root is judged by the name the caller gave it, so "." or ".." is
// walked even when the directory it resolves to would be pruned.
func Entries(root string, opts ...Option) iter.Seq[Entry] {
	o := newOptions(opts)
	return func(yield func(Entry) bool) {
		abs, err := filepath.Abs(root)
		if err != nil {
			o.logger.Debug("skipping walk root", "root", root, "error", err)
			return
		}
		w := &walker{opts: o, root: abs, rootName: filepath.Base(filepath.Clean(root)), yield: yield}
		w.visit(abs, nil, 0, nil)
	}
}

// Files yields the absolute path of every regular file under root whose
// extension equals ext. The comparison is case-sensitive and ext carries
// no leading dot. Passing Wildcard yields every regular file.
func Files(root, ext string, opts ...Option) iter.Seq[string] {
	return func(yield func(string) bool) {
		for e := range Entries(root, opts...) {
			if !e.IsRegular() || !MatchExtension(e.Path, ext) {
				continue
			}
			if !yield(e.Path) {
				return
			}
		}
	}
}

// MatchExtension reports whether path has the extension ext, or whether
// ext is the Wildcard.
func MatchExtension(path, ext string) bool {
	if ext == Wildcard {
		return true
	}
	got := filepath.Ext(path)
	return got != "" && got[1:] == ext
}

type walker struct {
	opts     *options
	root     string
	rootName string
	yield    func(Entry) bool
}

// visit returns false once the consumer stops iterating.
func (w *walker) visit(path string, d fs.DirEntry, depth int, ancestors []string) bool {
	name := filepath.Base(path)
	if depth == 0 {
		name = w.rootName
	}
	if w.opts.pruned(path, name) {
		w.opts.logger.Debug("pruned", "path", path)
		return true
	}

	info, err := os.Stat(path)
	if err != nil {
		w.skip(path, err)
		return true
	}

	var link bool
	if d != nil {
		link = d.Type()&fs.ModeSymlink != 0
	} else if li, err := os.Lstat(path); err == nil {
		link = li.Mode()&fs.ModeSymlink != 0
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	entry := Entry{Path: path, Rel: rel, Type: info.Mode().Type(), Link: link, Depth: depth}

	if !info.IsDir() {
		return w.yield(entry)
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		w.skip(path, err)
		return true
	}
	if slices.Contains(ancestors, resolved) {
		w.skip(path, ErrSymlinkLoop)
		return true
	}

	if !w.yield(entry) {
		return false
	}

	children, err := os.ReadDir(path)
	if err != nil {
		w.skip(path, err)
		return true
	}
	ancestors = append(ancestors, resolved)
	for _, child := range children {
		if !w.visit(filepath.Join(path, child.Name()), child, depth+1, ancestors) {
			return false
		}
	}
	return true
}

func (w *walker) skip(path string, err error) {
	w.opts.logger.Debug("skipping entry", "path", path, "error", err)
}
