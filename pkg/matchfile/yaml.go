package matchfile

// yamlMatchFile is the intermediate struct yaml.v3 decodes a match file
// into, mirroring the teacher's yamlRulesFile: never exposed outside this
// package, converted to model types by convert.go.
type yamlMatchFile struct {
	Imports    []string       `yaml:"imports,omitempty"`
	GlobalVars []yamlVariable `yaml:"global_vars,omitempty"`
	Matches    []yamlMatch    `yaml:"matches,omitempty"`
}

type yamlVariable struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Params     map[string]any `yaml:"params,omitempty"`
	InjectVars *bool          `yaml:"inject_vars,omitempty"`
	DependsOn  []string       `yaml:"depends_on,omitempty"`
}

type yamlMatch struct {
	Trigger  string   `yaml:"trigger,omitempty"`
	Triggers []string `yaml:"triggers,omitempty"`
	Regex    string   `yaml:"regex,omitempty"`

	Replace   *string `yaml:"replace,omitempty"`
	Markdown  *string `yaml:"markdown,omitempty"`
	Html      *string `yaml:"html,omitempty"`
	Form      *string `yaml:"form,omitempty"`
	ImagePath *string `yaml:"image_path,omitempty"`

	Word      bool `yaml:"word,omitempty"`
	LeftWord  *bool `yaml:"left_word,omitempty"`
	RightWord *bool `yaml:"right_word,omitempty"`

	PropagateCase bool    `yaml:"propagate_case,omitempty"`
	UppercaseStyle string `yaml:"uppercase_style,omitempty"`

	ForceClipboard bool    `yaml:"force_clipboard,omitempty"`
	ForceMode      string  `yaml:"force_mode,omitempty"`

	FormFields  map[string]any `yaml:"form_fields,omitempty"`
	Vars        []yamlVariable `yaml:"vars,omitempty"`
	Label       *string        `yaml:"label,omitempty"`
	SearchTerms []string       `yaml:"search_terms,omitempty"`
}
