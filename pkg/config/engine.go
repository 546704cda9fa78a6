// Package config is the top-level facade tying C1-C11 together: it loads
// a profile store and match store, builds a per-profile cache on first
// use, and exposes the two operations a frontend actually calls —
// expand a literal trigger, or a regex match — against the currently
// focused application (spec.md §2's dataflow, end to end).
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/expando-dev/expando/pkg/cache"
	"github.com/expando-dev/expando/pkg/extension"
	"github.com/expando-dev/expando/pkg/matchstore"
	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/profile"
	"github.com/expando-dev/expando/pkg/profilecache"
	"github.com/expando-dev/expando/pkg/profilestore"
	"github.com/expando-dev/expando/pkg/regexmatch"
	"github.com/expando-dev/expando/pkg/render"
)

// Engine owns one loaded Configuration for the process lifetime (spec.md
// §3's Configuration, §5's "immutable once constructed" policy). Reloading
// means constructing a fresh Engine and swapping the handle the frontend
// holds. After Load returns, the profiles and match store are never
// modified; the per-profile caches and regex matchers are built lazily by
// cacheFor and memoized without locking.
type Engine struct {
	profiles   profilestore.Store
	store      *model.MatchFileStore
	refsByPath map[string]model.MatchFileRef
	registry   *extension.Registry

	caches   map[string]*profilecache.Cache
	matchers map[string]regexmatch.Matcher

	loadErrors []model.NonFatalErrorSet
}

// Load builds an Engine from a default profile, an optional custom-profile
// directory, and every match file those profiles' includes/excludes
// resolve to. Non-fatal problems encountered anywhere in the load are
// returned alongside a still-usable Engine (spec.md §7).
func Load(defaultProfilePath, customProfileDir string, registry *extension.Registry) (*Engine, []model.NonFatalErrorSet) {
	profiles, errs := profilestore.Load(defaultProfilePath, customProfileDir)

	all := append([]profile.File{profiles.Default}, profiles.Custom...)
	var topPaths []string
	for _, p := range all {
		topPaths = append(topPaths, p.MatchFilePaths...)
	}

	store, refs, loadErrs := matchstore.Load(topPaths)
	errs = append(errs, loadErrs...)

	e := &Engine{
		profiles:   profiles,
		store:      store,
		refsByPath: refs,
		registry:   registry,
		caches:     map[string]*profilecache.Cache{},
		matchers:   map[string]regexmatch.Matcher{},
		loadErrors: errs,
	}
	return e, errs
}

// Profiles exposes the loaded profile store for inspection (C14) and
// introspection (C15) surfaces.
func (e *Engine) Profiles() profilestore.Store { return e.profiles }

// LoadErrors returns every non-fatal problem encountered during Load.
func (e *Engine) LoadErrors() []model.NonFatalErrorSet { return e.loadErrors }

// CacheFor exposes cacheFor for read-only inspection callers outside this
// package (C14, C15) — it never mutates the profile, only builds/memoizes
// its cache.
func (e *Engine) CacheFor(p profile.File) (*profilecache.Cache, regexmatch.Matcher) {
	return e.cacheFor(p)
}

// cacheFor returns (building and memoizing on first use) the
// profilecache.Cache and regexmatch.Matcher for p.
func (e *Engine) cacheFor(p profile.File) (*profilecache.Cache, regexmatch.Matcher) {
	if c, ok := e.caches[p.SourcePath]; ok {
		return c, e.matchers[p.SourcePath]
	}

	var roots []model.MatchFileRef
	for _, path := range p.MatchFilePaths {
		if ref, ok := e.refsByPath[path]; ok {
			roots = append(roots, ref)
		}
	}
	collected := e.store.Collect(roots)
	built := profilecache.Build(collected)

	sources := make([]regexmatch.Source, len(built.Regex))
	for i, rm := range built.Regex {
		sources[i] = regexmatch.Source{Index: i, Pattern: rm.Regex}
	}
	matcher, _ := regexmatch.New(sources)

	e.caches[p.SourcePath] = built
	e.matchers[p.SourcePath] = matcher
	return built, matcher
}

// ActiveProfile returns the profile selected for app (spec.md §3 C6).
func (e *Engine) ActiveProfile(app profile.AppProperties) profile.File {
	return e.profiles.Select(app)
}

func globalVarMap(m map[string]*model.Variable) map[string]model.Variable {
	out := make(map[string]model.Variable, len(m))
	for k, v := range m {
		out[k] = *v
	}
	return out
}

// Expand resolves candidate as a literal trigger against app's active
// profile and renders its effect (spec.md §4.5+§4.6 trigger dispatch,
// §4.8 render).
func (e *Engine) Expand(ctx context.Context, candidate string, app profile.AppProperties) render.Result {
	active := e.ActiveProfile(app)
	cache, _ := e.cacheFor(active)

	tm, ok := cache.Dispatch(candidate)
	if !ok {
		return render.Result{Outcome: render.OutcomeError, Err: fmt.Errorf("no trigger match for %q", candidate)}
	}
	if tm.Base.Effect.Kind != model.EffectText || tm.Base.Effect.Text == nil {
		return render.Result{Outcome: render.OutcomeError, Err: fmt.Errorf("trigger %q has no text effect", candidate)}
	}

	style := render.SelectStyle(candidate, tm.UppercaseStyle, tm.PropagateCase)
	rc := render.Context{MatchesMap: cache.TriggerMap, GlobalVarsMap: globalVarMap(cache.GlobalVarMap)}
	return render.Render(ctx, *tm.Base.Effect.Text, rc, render.Options{CasingStyle: style}, e.registry)
}

// ExpandRegex resolves candidate against app's active profile's regex
// matches (spec.md §4.6). A regex match's captured named groups are
// substituted into its body as literal text before the usual {{…}}
// evaluation runs — spec.md is silent on how regex captures reach the
// renderer, so they are treated as pre-bound text rather than added to the
// variable graph (see DESIGN.md's Open Questions).
func (e *Engine) ExpandRegex(ctx context.Context, candidate string, app profile.AppProperties) render.Result {
	active := e.ActiveProfile(app)
	cache, matcher := e.cacheFor(active)
	if matcher == nil {
		return render.Result{Outcome: render.OutcomeError, Err: fmt.Errorf("no regex matches configured for this profile")}
	}

	detected := matcher.Find(candidate)
	if len(detected) == 0 {
		return render.Result{Outcome: render.OutcomeError, Err: fmt.Errorf("no regex match for %q", candidate)}
	}
	d := detected[0]
	rm := cache.Regex[d.Index]
	if rm.Base.Effect.Kind != model.EffectText || rm.Base.Effect.Text == nil {
		return render.Result{Outcome: render.OutcomeError, Err: fmt.Errorf("regex match has no text effect")}
	}

	effect := *rm.Base.Effect.Text
	effect.Body = substituteCaptures(effect.Body, d.Args)

	rc := render.Context{MatchesMap: cache.TriggerMap, GlobalVarsMap: globalVarMap(cache.GlobalVarMap)}
	return render.Render(ctx, effect, rc, render.Options{}, e.registry)
}

// Archive builds the cache.Header and cache.Snapshot that fully describe
// this Engine's loaded configuration (C11, cmd/expando's "cache build").
// Every profile the store holds contributes a ProfileSnapshot and a
// GlobConfig entry; every match file the arena holds contributes a
// MatchFileSnapshot, so the result is reload-equivalent regardless of
// which profile was actually used to populate e.caches during this run.
func (e *Engine) Archive() (cache.Header, cache.Snapshot) {
	all := append([]profile.File{e.profiles.Default}, e.profiles.Custom...)

	var snap cache.Snapshot
	header := cache.Header{
		ProfileGlobs:     map[string]cache.GlobConfig{},
		ProfileMatchSets: map[string][]string{},
	}

	for i, p := range all {
		ps := cache.ProfileSnapshot{SourcePath: p.SourcePath, Config: p.Config}
		if i == 0 {
			snap.DefaultProfile = ps
		} else {
			snap.CustomProfiles = append(snap.CustomProfiles, ps)
		}

		header.ProfilePaths = append(header.ProfilePaths, p.SourcePath)
		header.ProfileMatchSets[p.SourcePath] = p.MatchFilePaths
		header.ProfileGlobs[p.SourcePath] = cache.GlobConfig{
			BaseDir:             filepath.Dir(p.SourcePath),
			Includes:            p.Config.Includes,
			Excludes:            p.Config.Excludes,
			ExtraIncludes:       p.Config.ExtraIncludes,
			ExtraExcludes:       p.Config.ExtraExcludes,
			UseStandardIncludes: p.UseStandardIncludes(),
		}
	}

	for path, ref := range e.refsByPath {
		rf, ok := e.store.Get(ref)
		if !ok {
			continue
		}
		header.MatchFilePaths = append(header.MatchFilePaths, path)

		imports := make([]int, len(rf.Imports))
		for i, r := range rf.Imports {
			imports[i] = int(r)
		}
		snap.MatchFiles = append(snap.MatchFiles, cache.MatchFileSnapshot{
			SourcePath: rf.SourcePath,
			Imports:    imports,
			Content:    rf.Content,
		})
	}

	return header, snap
}

func substituteCaptures(body string, args map[string]string) string {
	for name, val := range args {
		body = strings.ReplaceAll(body, "{{"+name+"}}", val)
	}
	return body
}
