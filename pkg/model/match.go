package model

// WordBoundary controls whether a trigger must be flanked by a non-word
// character on one or both sides to fire.
type WordBoundary int

const (
	WordBoundaryNone WordBoundary = iota
	WordBoundaryLeft
	WordBoundaryRight
	WordBoundaryBoth
)

// UppercaseStyle names the casing transform applied when propagate_case is
// set and the typed trigger began with an uppercase letter (spec.md §4.8).
type UppercaseStyle int

const (
	StyleUppercase UppercaseStyle = iota
	StyleCapitalize
	StyleCapitalizeWords
)

// EffectKind tags BaseMatch.Effect.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectText
	EffectImage
)

// Format is the markup language a TextEffect.Body is authored in. The core
// never renders Markdown/Html to a display surface — that belongs to the
// frontend — but carries the tag through so a frontend can choose how to
// paste the result.
type Format int

const (
	FormatPlain Format = iota
	FormatMarkdown
	FormatHtml
)

// ForceMode overrides how a frontend should paste a rendered expansion.
type ForceMode int

const (
	ForceModeNone ForceMode = iota
	ForceModeKeys
	ForceModeClipboard
)

// TextEffect is the replacement body plus its variable graph (spec.md §3).
type TextEffect struct {
	Body      string
	Vars      []Variable
	Format    Format
	ForceMode ForceMode
}

// ImageEffect replaces a trigger with an image instead of text. The core
// only carries the path through; rendering an image to the input surface is
// a frontend concern.
type ImageEffect struct {
	Path string
}

// Effect is the closed EffectNone|EffectText|EffectImage variant.
type Effect struct {
	Kind  EffectKind
	Text  *TextEffect
	Image *ImageEffect
}

// BaseMatch holds the fields shared by trigger- and regex-matches.
type BaseMatch struct {
	Effect      Effect
	Label       string
	HasLabel    bool
	SearchTerms []string
}

// TriggerMatch is a match selected by one or more literal trigger strings.
type TriggerMatch struct {
	Triggers       []string
	Base           BaseMatch
	PropagateCase  bool
	UppercaseStyle UppercaseStyle
	WordBoundary   WordBoundary
}

// RegexMatch is a match selected by a regular expression instead of a
// literal trigger list.
type RegexMatch struct {
	Regex string
	Base  BaseMatch
}

// MatchFile is the parsed content of one YAML match file: its global
// variables and the trigger/regex matches it defines directly (not counting
// imports, which are resolved separately — see pkg/matchstore).
type MatchFile struct {
	GlobalVars     []Variable
	TriggerMatches []TriggerMatch
	RegexMatches   []RegexMatch
}
