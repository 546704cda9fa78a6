package profile

// Inherit returns a ParsedConfig where every field set in child wins, and
// every field child leaves unset falls back to parent's value (spec.md
// §4.3: "for each field that is set in the parent and not set in the
// child, copy it down"). The default profile's already-inherited config
// never has a parent; custom profiles inherit from exactly the default
// profile, so this is never applied transitively beyond one level.
func Inherit(parent, child ParsedConfig) ParsedConfig {
	out := child

	if out.Enable == nil {
		out.Enable = parent.Enable
	}
	if out.ClipboardThreshold == nil {
		out.ClipboardThreshold = parent.ClipboardThreshold
	}
	if out.AutoRestart == nil {
		out.AutoRestart = parent.AutoRestart
	}
	if out.PrePasteDelay == nil {
		out.PrePasteDelay = parent.PrePasteDelay
	}
	if out.RestoreClipboardDelay == nil {
		out.RestoreClipboardDelay = parent.RestoreClipboardDelay
	}
	if out.PasteShortcutEventDelay == nil {
		out.PasteShortcutEventDelay = parent.PasteShortcutEventDelay
	}
	if out.PreserveClipboard == nil {
		out.PreserveClipboard = parent.PreserveClipboard
	}
	if out.DisableX11FastInject == nil {
		out.DisableX11FastInject = parent.DisableX11FastInject
	}
	if out.BackspaceLimit == nil {
		out.BackspaceLimit = parent.BackspaceLimit
	}
	if out.ApplyPatch == nil {
		out.ApplyPatch = parent.ApplyPatch
	}
	if out.UndoBackspace == nil {
		out.UndoBackspace = parent.UndoBackspace
	}
	if out.ShowIcon == nil {
		out.ShowIcon = parent.ShowIcon
	}
	if out.ShowNotifications == nil {
		out.ShowNotifications = parent.ShowNotifications
	}
	if out.SecureInputNotification == nil {
		out.SecureInputNotification = parent.SecureInputNotification
	}
	if out.EmulateAltCodes == nil {
		out.EmulateAltCodes = parent.EmulateAltCodes
	}
	if out.PostFormDelay == nil {
		out.PostFormDelay = parent.PostFormDelay
	}
	if out.MaxFormWidth == nil {
		out.MaxFormWidth = parent.MaxFormWidth
	}
	if out.MaxFormHeight == nil {
		out.MaxFormHeight = parent.MaxFormHeight
	}
	if out.PostSearchDelay == nil {
		out.PostSearchDelay = parent.PostSearchDelay
	}
	if out.Win32ExcludeOrphanEvents == nil {
		out.Win32ExcludeOrphanEvents = parent.Win32ExcludeOrphanEvents
	}
	if out.Win32KeyboardLayoutCacheInterval == nil {
		out.Win32KeyboardLayoutCacheInterval = parent.Win32KeyboardLayoutCacheInterval
	}
	if out.X11UseXclipBackend == nil {
		out.X11UseXclipBackend = parent.X11UseXclipBackend
	}
	if out.X11UseXdotoolBackend == nil {
		out.X11UseXdotoolBackend = parent.X11UseXdotoolBackend
	}
	if out.SearchTrigger == nil {
		out.SearchTrigger = parent.SearchTrigger
	}
	if out.SearchShortcut == nil {
		out.SearchShortcut = parent.SearchShortcut
	}
	if out.Label == nil {
		out.Label = parent.Label
	}
	if out.Backend == nil {
		out.Backend = parent.Backend
	}
	if out.PasteShortcut == nil {
		out.PasteShortcut = parent.PasteShortcut
	}
	if out.ToggleKey == nil {
		out.ToggleKey = parent.ToggleKey
	}
	if out.WordSeparators == nil {
		out.WordSeparators = parent.WordSeparators
	}
	if out.KeyboardLayout == nil {
		out.KeyboardLayout = parent.KeyboardLayout
	}
	if out.FilterTitle == nil {
		out.FilterTitle = parent.FilterTitle
	}
	if out.FilterClass == nil {
		out.FilterClass = parent.FilterClass
	}
	if out.FilterExec == nil {
		out.FilterExec = parent.FilterExec
	}
	if out.FilterOS == nil {
		out.FilterOS = parent.FilterOS
	}
	if out.Includes == nil {
		out.Includes = parent.Includes
	}
	if out.Excludes == nil {
		out.Excludes = parent.Excludes
	}
	if out.ExtraIncludes == nil {
		out.ExtraIncludes = parent.ExtraIncludes
	}
	if out.ExtraExcludes == nil {
		out.ExtraExcludes = parent.ExtraExcludes
	}
	if out.UseStandardIncludes == nil {
		out.UseStandardIncludes = parent.UseStandardIncludes
	}

	return out
}
