// Package profile implements C5: parsing one profile YAML file, merging
// parent->child settings field by field, compiling its filter regexes, and
// resolving its match_file_paths via glob expansion (spec.md §4.3).
package profile

import "runtime"

// KeyboardLayout mirrors the optional keyboard_layout mapping (spec.md §6).
type KeyboardLayout struct {
	Rules   string `yaml:"rules,omitempty"`
	Model   string `yaml:"model,omitempty"`
	Layout  string `yaml:"layout,omitempty"`
	Variant string `yaml:"variant,omitempty"`
	Options string `yaml:"options,omitempty"`
}

// ParsedConfig is the full set of optional profile settings, decoded
// directly from YAML. Every field is a pointer (or nil slice) so that
// Inherit (see inherit.go) can tell "unset" apart from "explicitly set to
// the zero value" — the distinction spec.md §4.3's parent->child fallback
// depends on.
type ParsedConfig struct {
	Enable                          *bool   `yaml:"enable,omitempty"`
	ClipboardThreshold              *int    `yaml:"clipboard_threshold,omitempty"`
	AutoRestart                     *bool   `yaml:"auto_restart,omitempty"`
	PrePasteDelay                   *int    `yaml:"pre_paste_delay,omitempty"`
	RestoreClipboardDelay           *int    `yaml:"restore_clipboard_delay,omitempty"`
	PasteShortcutEventDelay         *int    `yaml:"paste_shortcut_event_delay,omitempty"`
	PreserveClipboard               *bool   `yaml:"preserve_clipboard,omitempty"`
	DisableX11FastInject            *bool   `yaml:"disable_x11_fast_inject,omitempty"`
	BackspaceLimit                  *int    `yaml:"backspace_limit,omitempty"`
	ApplyPatch                      *bool   `yaml:"apply_patch,omitempty"`
	UndoBackspace                   *bool   `yaml:"undo_backspace,omitempty"`
	ShowIcon                        *bool   `yaml:"show_icon,omitempty"`
	ShowNotifications               *bool   `yaml:"show_notifications,omitempty"`
	SecureInputNotification         *bool   `yaml:"secure_input_notification,omitempty"`
	EmulateAltCodes                 *bool   `yaml:"emulate_alt_codes,omitempty"`
	PostFormDelay                   *int    `yaml:"post_form_delay,omitempty"`
	MaxFormWidth                    *int    `yaml:"max_form_width,omitempty"`
	MaxFormHeight                   *int    `yaml:"max_form_height,omitempty"`
	PostSearchDelay                 *int    `yaml:"post_search_delay,omitempty"`
	Win32ExcludeOrphanEvents        *bool   `yaml:"win32_exclude_orphan_events,omitempty"`
	Win32KeyboardLayoutCacheInterval *int   `yaml:"win32_keyboard_layout_cache_interval,omitempty"`
	X11UseXclipBackend              *bool   `yaml:"x11_use_xclip_backend,omitempty"`
	X11UseXdotoolBackend            *bool   `yaml:"x11_use_xdotool_backend,omitempty"`
	SearchTrigger                   *string `yaml:"search_trigger,omitempty"`
	SearchShortcut                  *string `yaml:"search_shortcut,omitempty"`

	Label          *string `yaml:"label,omitempty"`
	Backend        *string `yaml:"backend,omitempty"`
	PasteShortcut  *string `yaml:"paste_shortcut,omitempty"`
	ToggleKey      *string `yaml:"toggle_key,omitempty"`

	WordSeparators []string `yaml:"word_separators,omitempty"`

	KeyboardLayout *KeyboardLayout `yaml:"keyboard_layout,omitempty"`

	FilterTitle *string `yaml:"filter_title,omitempty"`
	FilterClass *string `yaml:"filter_class,omitempty"`
	FilterExec  *string `yaml:"filter_exec,omitempty"`
	FilterOS    *string `yaml:"filter_os,omitempty"`

	Includes            []string `yaml:"includes,omitempty"`
	Excludes            []string `yaml:"excludes,omitempty"`
	ExtraIncludes       []string `yaml:"extra_includes,omitempty"`
	ExtraExcludes       []string `yaml:"extra_excludes,omitempty"`
	UseStandardIncludes *bool    `yaml:"use_standard_includes,omitempty"`
}

// DefaultWordSeparators is the 21-literal default (spec.md §4.3).
var DefaultWordSeparators = []string{
	" ", ",", ";", ":", ".", "?", "!", "(", ")", "{", "}", "[", "]", "<", ">",
	"'", "\"", "\r", "\t", "\n", "\x0c",
}

func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// withDefaults returns a ParsedConfig identical to c but with every unset
// field filled in with its spec.md §4.3 default. Called on every loaded
// profile's fully inherited ParsedConfig, so accessors never need to
// special-case nil.
func withDefaults(c ParsedConfig) ParsedConfig {
	if c.Enable == nil {
		c.Enable = boolPtr(true)
	}
	if c.ClipboardThreshold == nil {
		c.ClipboardThreshold = intPtr(100)
	}
	if c.AutoRestart == nil {
		c.AutoRestart = boolPtr(true)
	}
	if c.PrePasteDelay == nil {
		c.PrePasteDelay = intPtr(100)
	}
	if c.RestoreClipboardDelay == nil {
		c.RestoreClipboardDelay = intPtr(300)
	}
	if c.PasteShortcutEventDelay == nil {
		c.PasteShortcutEventDelay = intPtr(10)
	}
	if c.PreserveClipboard == nil {
		c.PreserveClipboard = boolPtr(true)
	}
	if c.DisableX11FastInject == nil {
		c.DisableX11FastInject = boolPtr(false)
	}
	if c.BackspaceLimit == nil {
		c.BackspaceLimit = intPtr(5)
	}
	if c.ApplyPatch == nil {
		c.ApplyPatch = boolPtr(true)
	}
	if c.UndoBackspace == nil {
		c.UndoBackspace = boolPtr(true)
	}
	if c.ShowIcon == nil {
		c.ShowIcon = boolPtr(true)
	}
	if c.ShowNotifications == nil {
		c.ShowNotifications = boolPtr(true)
	}
	if c.SecureInputNotification == nil {
		c.SecureInputNotification = boolPtr(true)
	}
	if c.EmulateAltCodes == nil {
		c.EmulateAltCodes = boolPtr(runtime.GOOS == "windows")
	}
	if c.PostFormDelay == nil {
		c.PostFormDelay = intPtr(200)
	}
	if c.MaxFormWidth == nil {
		c.MaxFormWidth = intPtr(700)
	}
	if c.MaxFormHeight == nil {
		c.MaxFormHeight = intPtr(500)
	}
	if c.PostSearchDelay == nil {
		c.PostSearchDelay = intPtr(200)
	}
	if c.Win32ExcludeOrphanEvents == nil {
		c.Win32ExcludeOrphanEvents = boolPtr(true)
	}
	if c.Win32KeyboardLayoutCacheInterval == nil {
		c.Win32KeyboardLayoutCacheInterval = intPtr(2000)
	}
	if c.X11UseXclipBackend == nil {
		c.X11UseXclipBackend = boolPtr(false)
	}
	if c.X11UseXdotoolBackend == nil {
		c.X11UseXdotoolBackend = boolPtr(false)
	}
	if c.SearchShortcut == nil {
		c.SearchShortcut = strPtr("ALT+SPACE")
	} else if *c.SearchShortcut == "off" || *c.SearchShortcut == "OFF" {
		c.SearchShortcut = strPtr("")
	}
	if c.WordSeparators == nil {
		c.WordSeparators = append([]string{}, DefaultWordSeparators...)
	}
	if c.UseStandardIncludes == nil {
		c.UseStandardIncludes = boolPtr(true)
	}
	return c
}
