// Package structured implements the structured call gateway: one outbound
// request to a generation service, constrained to return output matching a
// declared contract. Every orchestration component in this module goes
// through Call; nothing below it issues provider requests directly.
package structured

import (
	"fmt"
	"strings"
)

// Field describes one typed field of an output contract. Type is the JSON
// type the provider must emit ("string", "boolean", "number", "integer",
// "array of strings", ...); Description tells the model what the field means.
type Field struct {
	Name        string
	Type        string
	Description string
}

// Contract is a named, closed set of typed fields. It is defined once per
// call site and never mutated; the gateway renders it into the system
// prompt and uses the target Go type to validate the response shape.
type Contract struct {
	Name   string
	Fields []Field
}

// Validate checks that the contract declares at least one field.
func (c Contract) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("contract has no name")
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("contract %s declares no fields", c.Name)
	}
	for _, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("contract %s has a field with no name", c.Name)
		}
	}
	return nil
}

// PromptBlock renders the contract as response instructions for the model.
func (c Contract) PromptBlock() string {
	var b strings.Builder
	b.WriteString("You MUST respond with a single valid JSON object with exactly these fields:\n")
	for _, f := range c.Fields {
		fmt.Fprintf(&b, "- %q (%s): %s\n", f.Name, f.Type, f.Description)
	}
	b.WriteString("\nDo not include any text outside the JSON object.")
	return b.String()
}

// Request carries one structured call: a system context, a user context,
// and the output contract the response must satisfy. Requests are created
// fresh per call and never reused.
type Request struct {
	System   string
	User     string
	Contract Contract
}
