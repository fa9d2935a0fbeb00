package patch

// Edit kinds supported by the patcher.
const (
	KindLine        = "line"
	KindJSONDefault = "json_default"
)

// Edit describes one idempotent default applied to a configuration artifact.
// The merge policy is set-if-absent: a key the user already set is never
// overwritten, whatever its value.
type Edit struct {
	File     string `yaml:"file" json:"file" validate:"required"`
	Kind     string `yaml:"kind" json:"kind" validate:"required,oneof=line json_default"`
	Key      string `yaml:"key" json:"key" validate:"required"`
	Value    string `yaml:"value" json:"value" validate:"required"`
	Section  string `yaml:"section,omitempty" json:"section,omitempty"`
	Encoding string `yaml:"encoding,omitempty" json:"encoding,omitempty"`
	Backup   bool   `yaml:"backup,omitempty" json:"backup,omitempty"`
}

// Result reports what an edit did (or would do) to its artifact.
type Result struct {
	Changed bool
	Message string
	Diff    string
}
