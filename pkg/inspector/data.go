package inspector

import (
	"sort"

	"github.com/expando-dev/expando/pkg/config"
	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/profile"
)

// profileRow is one browsable row under the profiles list.
type profileRow struct {
	file    profile.File
	isCustom bool
}

// inspectData is the flattened, read-only snapshot the Model browses.
// Built once from an *config.Engine at New; the Engine itself is never
// mutated (spec.md's Configuration is immutable once constructed).
type inspectData struct {
	profiles []profileRow
	errors   []model.NonFatalErrorSet
	engine   *config.Engine
}

func loadData(eng *config.Engine) *inspectData {
	store := eng.Profiles()

	rows := []profileRow{{file: store.Default, isCustom: false}}
	for _, c := range store.Custom {
		rows = append(rows, profileRow{file: c, isCustom: true})
	}

	return &inspectData{
		profiles: rows,
		errors:   eng.LoadErrors(),
		engine:   eng,
	}
}

// triggerRow is one entry in a profile's trigger table, sorted for stable
// display (Cache.TriggerMap iteration order is not stable).
type triggerRow struct {
	trigger string
	match   *model.TriggerMatch
}

func (d *inspectData) triggersFor(row profileRow) []triggerRow {
	cache, _ := d.engine.CacheFor(row.file)
	rows := make([]triggerRow, 0, len(cache.TriggerMap))
	for trigger, tm := range cache.TriggerMap {
		rows = append(rows, triggerRow{trigger: trigger, match: tm})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].trigger < rows[j].trigger })
	return rows
}

type globalVarRow struct {
	name string
	v    *model.Variable
}

func (d *inspectData) globalVarsFor(row profileRow) []globalVarRow {
	cache, _ := d.engine.CacheFor(row.file)
	rows := make([]globalVarRow, 0, len(cache.GlobalVarMap))
	for name, v := range cache.GlobalVarMap {
		rows = append(rows, globalVarRow{name: name, v: v})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	return rows
}
