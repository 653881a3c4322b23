package skills

import (
	"github.com/invopop/jsonschema"
)

// ToolInput documents the shape of a skill tool invocation. Callers may send
// further members alongside skill; they are passed through untouched.
type ToolInput struct {
	Skill string `json:"skill" jsonschema:"description=Skill reference: a bare name (commit) or plugin:name (my-workspace:commit)"`
	Args  string `json:"args,omitempty" jsonschema:"description=Optional arguments for the skill"`
}

// InputSchema returns the JSON schema of a skill tool invocation
func InputSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	return reflector.Reflect(&ToolInput{})
}
