package model

// MatchFileRef is a stable integer reference into a MatchFileStore's arena.
// References are assigned at load time and never reused or mutated for the
// remainder of the process (spec.md §3 FileStore<T>, §9 design notes).
type MatchFileRef int

// LoadedMatchFile is one parsed match file plus the canonical paths of the
// files it imports, before those imports have been resolved to MatchFileRefs
// (that resolution happens once the whole worklist has settled — see
// pkg/matchstore).
type LoadedMatchFile struct {
	SourcePath  string
	ImportPaths []string
	Content     MatchFile
}

// ResolvedMatchFile is a LoadedMatchFile whose imports have been rewritten
// into arena references, ready for the DFS collect() in pkg/matchstore.
type ResolvedMatchFile struct {
	SourcePath string
	Imports    []MatchFileRef
	Content    MatchFile
}

// MatchFileStore is the append-only arena described in spec.md §3 and §4.4.
// It is built once during a load and never mutated afterward; every other
// component holds borrowed references into it.
type MatchFileStore struct {
	files []ResolvedMatchFile
}

func NewMatchFileStore() *MatchFileStore { return &MatchFileStore{} }

// Add appends f to the arena and returns its stable reference.
func (s *MatchFileStore) Add(f ResolvedMatchFile) MatchFileRef {
	s.files = append(s.files, f)
	return MatchFileRef(len(s.files) - 1)
}

func (s *MatchFileStore) Get(ref MatchFileRef) (ResolvedMatchFile, bool) {
	if int(ref) < 0 || int(ref) >= len(s.files) {
		return ResolvedMatchFile{}, false
	}
	return s.files[ref], true
}

func (s *MatchFileStore) Len() int { return len(s.files) }

// Replace overwrites the arena slot at ref. Used only by the second pass of
// pkg/matchstore.Load, which fills in each file's import refs once the
// whole worklist has settled — never by any other caller, since the arena
// is otherwise append-only for the remainder of the process.
func (s *MatchFileStore) Replace(ref MatchFileRef, f ResolvedMatchFile) {
	if int(ref) < 0 || int(ref) >= len(s.files) {
		return
	}
	s.files[ref] = f
}

// Collected is the flattened, borrowed result of a DFS collect() over one
// profile's root match files (spec.md §4.4).
type Collected struct {
	TriggerMatches []*TriggerMatch
	RegexMatches   []*RegexMatch
	GlobalVars     []*Variable
}

// Collect walks roots (and everything they import, transitively) exactly
// once each, depth-first, and flattens every trigger/regex match and global
// variable it finds. Order is implementation-defined; callers that need a
// stable order must sort (spec.md §4.4, §8).
func (s *MatchFileStore) Collect(roots []MatchFileRef) Collected {
	var out Collected
	visited := make(map[MatchFileRef]bool, len(roots))
	var walk func(ref MatchFileRef)
	walk = func(ref MatchFileRef) {
		if visited[ref] {
			return
		}
		visited[ref] = true
		f, ok := s.Get(ref)
		if !ok {
			return
		}
		for i := range f.Content.TriggerMatches {
			out.TriggerMatches = append(out.TriggerMatches, &f.Content.TriggerMatches[i])
		}
		for i := range f.Content.RegexMatches {
			out.RegexMatches = append(out.RegexMatches, &f.Content.RegexMatches[i])
		}
		for i := range f.Content.GlobalVars {
			out.GlobalVars = append(out.GlobalVars, &f.Content.GlobalVars[i])
		}
		for _, imp := range f.Imports {
			walk(imp)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}
