package profile

// The accessor methods below assume Config has already passed through
// withDefaults (true for every File produced by LoadDefault/LoadCustom),
// so every pointer they dereference is guaranteed non-nil.

func (f File) IsEnabled() bool              { return *f.Config.Enable }
func (f File) ClipboardThreshold() int      { return *f.Config.ClipboardThreshold }
func (f File) AutoRestart() bool            { return *f.Config.AutoRestart }
func (f File) PrePasteDelay() int           { return *f.Config.PrePasteDelay }
func (f File) RestoreClipboardDelay() int   { return *f.Config.RestoreClipboardDelay }
func (f File) BackspaceLimit() int          { return *f.Config.BackspaceLimit }
func (f File) ShowNotifications() bool      { return *f.Config.ShowNotifications }
func (f File) EmulateAltCodes() bool        { return *f.Config.EmulateAltCodes }
func (f File) SearchShortcut() string       { return *f.Config.SearchShortcut }
func (f File) WordSeparators() []string     { return f.Config.WordSeparators }
func (f File) UseStandardIncludes() bool    { return *f.Config.UseStandardIncludes }

// Label returns the profile's display label, or "" if unset — labels have
// no default fallback value (spec.md §4.3).
func (f File) Label() string {
	if f.Config.Label == nil {
		return ""
	}
	return *f.Config.Label
}
