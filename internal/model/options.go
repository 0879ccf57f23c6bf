package model

import (
	"fmt"
	"strconv"
)

// Option groups, used to arrange the form tabs.
const (
	GroupTarget      = "Target"
	GroupAdvanced    = "Advanced"
	GroupEnumeration = "Enumeration"
	GroupBruteforce  = "Bruteforce"
	GroupTechniques  = "Techniques"
)

// OptionSpec describes one scan option: its key, the command-line flag it
// maps to, its kind and its declared default. The order of entries in the
// schema table is the canonical emission order of the compiled command.
type OptionSpec struct {
	// Key is the option identifier used by the option model and presets.
	Key string
	// Flag is the command-line flag (e.g. "--risk", "-u").
	Flag string
	// Kind controls rendering and omission rules.
	Kind OptionKind
	// Default is the declared default value; options at their default are
	// omitted from the compiled command.
	Default string
	// Choices restricts KindChoice options to a fixed set when non-empty.
	Choices []string
	// Letter is the technique letter for KindTechnique options.
	Letter string
	// Title is the human-readable label shown in the form.
	Title string
	// Group assigns the option to a form tab.
	Group string
	// SpaceSep renders the flag and value as two tokens ("-u value")
	// instead of the "--flag=value" form.
	SpaceSep bool
}

// schema is the authoritative option table. Emission order of the compiled
// command follows this slice top to bottom; the six technique toggles form
// one contiguous block that compiles into a single composite token.
var schema = []OptionSpec{
	{Key: "url", Flag: "-u", Kind: KindText, Title: "Target URL", Group: GroupTarget, SpaceSep: true},
	{Key: "data", Flag: "--data", Kind: KindText, Title: "POST Data", Group: GroupTarget},
	{Key: "cookie", Flag: "--cookie", Kind: KindText, Title: "Cookie", Group: GroupTarget},
	{Key: "user_agent", Flag: "--user-agent", Kind: KindText, Title: "User-Agent", Group: GroupTarget},
	{Key: "referer", Flag: "--referer", Kind: KindText, Title: "Referer", Group: GroupTarget},
	{Key: "headers", Flag: "--headers", Kind: KindText, Title: "Custom Headers", Group: GroupTarget},
	{Key: "proxy", Flag: "--proxy", Kind: KindText, Title: "Proxy", Group: GroupTarget},
	{Key: "risk", Flag: "--risk", Kind: KindChoice, Default: "1", Choices: []string{"1", "2", "3"}, Title: "Risk Level", Group: GroupAdvanced},
	{Key: "level", Flag: "--level", Kind: KindChoice, Default: "1", Choices: []string{"1", "2", "3", "4", "5"}, Title: "Level", Group: GroupAdvanced},
	{Key: "threads", Flag: "--threads", Kind: KindChoice, Default: "1", Title: "Threads", Group: GroupAdvanced},
	{Key: "timeout", Flag: "--timeout", Kind: KindChoice, Default: "30", Title: "Timeout", Group: GroupAdvanced},
	{Key: "retries", Flag: "--retries", Kind: KindChoice, Default: "3", Title: "Retries", Group: GroupAdvanced},
	{Key: "delay", Flag: "--delay", Kind: KindChoice, Default: "0", Title: "Delay", Group: GroupAdvanced},
	{Key: "tor", Flag: "--tor", Kind: KindBool, Title: "Use Tor Network", Group: GroupTarget},
	{Key: "random_agent", Flag: "--random-agent", Kind: KindBool, Title: "Random User-Agent", Group: GroupTarget},
	{Key: "batch", Flag: "--batch", Kind: KindBool, Title: "Batch Mode (no questions)", Group: GroupAdvanced},
	{Key: "verbose", Flag: "-v", Kind: KindBool, Title: "Verbose Output", Group: GroupAdvanced},
	{Key: "enum_dbs", Flag: "--dbs", Kind: KindBool, Title: "Enumerate Databases", Group: GroupEnumeration},
	{Key: "enum_tables", Flag: "--tables", Kind: KindBool, Title: "Enumerate Tables", Group: GroupEnumeration},
	{Key: "enum_columns", Flag: "--columns", Kind: KindBool, Title: "Enumerate Columns", Group: GroupEnumeration},
	{Key: "enum_schema", Flag: "--schema", Kind: KindBool, Title: "Enumerate Schema", Group: GroupEnumeration},
	{Key: "database", Flag: "-D", Kind: KindText, Title: "Specific Database", Group: GroupEnumeration, SpaceSep: true},
	{Key: "table", Flag: "-T", Kind: KindText, Title: "Specific Table", Group: GroupEnumeration, SpaceSep: true},
	{Key: "dump_all", Flag: "--dump-all", Kind: KindBool, Title: "Dump All", Group: GroupEnumeration},
	{Key: "dump_table", Flag: "--dump", Kind: KindBool, Title: "Dump Table", Group: GroupEnumeration},
	{Key: "dump_columns", Flag: "--dump-columns", Kind: KindBool, Title: "Dump Columns", Group: GroupEnumeration},
	{Key: "count", Flag: "--count", Kind: KindBool, Title: "Count Entries", Group: GroupEnumeration},
	{Key: "common_tables", Flag: "--common-tables", Kind: KindBool, Title: "Common Table Names", Group: GroupBruteforce},
	{Key: "common_columns", Flag: "--common-columns", Kind: KindBool, Title: "Common Column Names", Group: GroupBruteforce},
	{Key: "wordlist", Flag: "--wordlist", Kind: KindText, Title: "Custom Wordlist", Group: GroupBruteforce},
	{Key: "technique_boolean", Kind: KindTechnique, Letter: "B", Title: "Boolean-based blind", Group: GroupTechniques},
	{Key: "technique_error", Kind: KindTechnique, Letter: "E", Title: "Error-based", Group: GroupTechniques},
	{Key: "technique_union", Kind: KindTechnique, Letter: "U", Title: "UNION query-based", Group: GroupTechniques},
	{Key: "technique_stacked", Kind: KindTechnique, Letter: "S", Title: "Stacked queries", Group: GroupTechniques},
	{Key: "technique_time", Kind: KindTechnique, Letter: "T", Title: "Time-based blind", Group: GroupTechniques},
	{Key: "technique_inline", Kind: KindTechnique, Letter: "Q", Title: "Inline queries", Group: GroupTechniques},
	{Key: "os_detect", Flag: "--os-detect", Kind: KindBool, Title: "OS Detection", Group: GroupTechniques},
	{Key: "dbms_detect", Flag: "--dbms-detect", Kind: KindBool, Title: "DBMS Detection", Group: GroupTechniques},
	{Key: "output_dir", Flag: "--output-dir", Kind: KindText, Title: "Output Directory", Group: GroupAdvanced},
}

var schemaIndex = func() map[string]int {
	idx := make(map[string]int, len(schema))
	for i, s := range schema {
		idx[s.Key] = i
	}
	return idx
}()

// Schema returns the ordered option table.
func Schema() []OptionSpec {
	out := make([]OptionSpec, len(schema))
	copy(out, schema)
	return out
}

// LookupSpec returns the spec for a key.
func LookupSpec(key string) (OptionSpec, bool) {
	i, ok := schemaIndex[key]
	if !ok {
		return OptionSpec{}, false
	}
	return schema[i], true
}

// defaultValue returns the stored default for a spec. Bool and technique
// options default to "false", text options to the empty string.
func defaultValue(s OptionSpec) string {
	switch s.Kind {
	case KindBool, KindTechnique:
		return "false"
	default:
		return s.Default
	}
}

// Options is the live option model: every schema key mapped to exactly one
// current string value. Bool-kinded options store "true"/"false".
type Options struct {
	values map[string]string
}

// NewOptions returns an option model with every key at its default.
func NewOptions() *Options {
	o := &Options{values: make(map[string]string, len(schema))}
	for _, s := range schema {
		o.values[s.Key] = defaultValue(s)
	}
	return o
}

// Get returns the current value for a key. Unknown keys return "".
func (o *Options) Get(key string) string {
	return o.values[key]
}

// Set assigns a value to a key. Unknown keys and out-of-set choice values
// are rejected.
func (o *Options) Set(key, value string) error {
	spec, ok := LookupSpec(key)
	if !ok {
		return fmt.Errorf("unknown option: %s", key)
	}
	switch spec.Kind {
	case KindBool, KindTechnique:
		// Normalize anything truthy to "true"/"false".
		o.values[key] = strconv.FormatBool(truthy(value))
	case KindChoice:
		if len(spec.Choices) > 0 && value != "" && !contains(spec.Choices, value) {
			return fmt.Errorf("option %s: value %q not in %v", key, value, spec.Choices)
		}
		if value == "" {
			value = spec.Default
		}
		o.values[key] = value
	default:
		o.values[key] = value
	}
	return nil
}

// Bool reports whether a bool-kinded option is set.
func (o *Options) Bool(key string) bool {
	return truthy(o.values[key])
}

// SetBool assigns a bool-kinded option.
func (o *Options) SetBool(key string, on bool) error {
	return o.Set(key, strconv.FormatBool(on))
}

// Toggle flips a bool-kinded option and returns the new state.
func (o *Options) Toggle(key string) bool {
	on := !o.Bool(key)
	_ = o.SetBool(key, on)
	return on
}

// IsDefault reports whether the key currently holds its declared default.
func (o *Options) IsDefault(key string) bool {
	spec, ok := LookupSpec(key)
	if !ok {
		return true
	}
	return o.values[key] == defaultValue(spec)
}

// Snapshot returns an independent copy of the model.
func (o *Options) Snapshot() *Options {
	c := &Options{values: make(map[string]string, len(o.values))}
	for k, v := range o.values {
		c.values[k] = v
	}
	return c
}

// Changed returns the subset of keys holding non-default values. This is
// what gets captured into a preset.
func (o *Options) Changed() map[string]string {
	out := make(map[string]string)
	for _, s := range schema {
		if v := o.values[s.Key]; v != defaultValue(s) {
			out[s.Key] = v
		}
	}
	return out
}

// Apply merges a value subset into the model. Keys present in the subset
// overwrite the current values; keys absent from it are left untouched.
// Unknown keys are skipped so older preset files stay loadable.
func (o *Options) Apply(subset map[string]string) {
	for k, v := range subset {
		if _, ok := LookupSpec(k); !ok {
			continue
		}
		_ = o.Set(k, v)
	}
}

// Reset restores every key to its default.
func (o *Options) Reset() {
	for _, s := range schema {
		o.values[s.Key] = defaultValue(s)
	}
}

func truthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
