package skills

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

const skillField = "skill"

// Input is a skill tool invocation: the skill reference plus whatever sibling
// fields the caller sent along with it. Skill is nil when the invocation has
// no string skill field; a non-string "skill" value stays in Fields.
type Input struct {
	Skill  *string
	Fields map[string]any
}

// Result is the outcome of qualifying an Input
type Result struct {
	Input    Input
	Modified bool
}

// NewInput returns an Input carrying skill and the given sibling fields
func NewInput(skill string, fields map[string]any) Input {
	return Input{Skill: &skill, Fields: fields}
}

// SkillName returns the skill reference, or "" when there is none
func (in Input) SkillName() string {
	if in.Skill == nil {
		return ""
	}
	return *in.Skill
}

// Clone returns a copy that shares no mutable state with in. Field values
// themselves are copied shallowly.
func (in Input) Clone() Input {
	out := Input{}
	if in.Skill != nil {
		skill := *in.Skill
		out.Skill = &skill
	}
	if in.Fields != nil {
		out.Fields = make(map[string]any, len(in.Fields))
		for k, v := range in.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

func (in Input) withSkill(skill string) Input {
	out := in.Clone()
	out.Skill = &skill
	return out
}

// MarshalJSON writes the sibling fields and the skill as one JSON object.
// Skill takes precedence over a "skill" entry in Fields.
func (in Input) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(in.Fields)+1)
	for k, v := range in.Fields {
		obj[k] = v
	}
	if in.Skill != nil {
		obj[skillField] = *in.Skill
	}
	return json.Marshal(obj)
}

// UnmarshalJSON reads a JSON object, lifting a string "skill" member into
// Skill. Numbers are kept as json.Number so they round-trip exactly.
func (in *Input) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return errors.Wrap(err, "invalid skill input")
	}
	if obj == nil {
		return errors.New("invalid skill input: expected a JSON object")
	}

	in.Skill = nil
	if skill, ok := obj[skillField].(string); ok {
		in.Skill = &skill
		delete(obj, skillField)
	}
	in.Fields = obj
	return nil
}
