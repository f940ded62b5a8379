package command

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Spec describes a command for tool listings.
type Spec struct {
	Name        Name
	Description string
	args        any
}

var specs = []Spec{
	{CreateTab, "Open a new tab. It is not attached to the window until switch_tab.", &CreateTabArgs{}},
	{SwitchTab, "Attach a tab to the window and make it active.", &SwitchTabArgs{}},
	{CloseTab, "Close a tab and release its surface.", &TabArgs{}},
	{LoadURL, "Load an address in a tab. Creates and activates a tab when none is open.", &LoadURLArgs{}},
	{GoBack, "Go back in the tab's history. performed is false at the start of history.", &TabArgs{}},
	{GoForward, "Go forward in the tab's history. performed is false at the end of history.", &TabArgs{}},
	{Reload, "Reload the tab.", &TabArgs{}},
	{Stop, "Stop loading the tab.", &TabArgs{}},
	{ExecuteScript, "Evaluate JavaScript in the tab and return the result.", &ExecuteScriptArgs{}},
	{GetNavigationState, "Report URL, title, loading state and history availability for a tab.", &TabArgs{}},
	{ListTabs, "List open tabs in creation order.", &NoArgs{}},
	{UpdateBounds, "Position the active surface. Requests are debounced.", &UpdateBoundsArgs{}},
	{WaitForElement, "Wait until a CSS selector matches in the tab.", &WaitForElementArgs{}},
	{NavigateInput, "Resolve free text (address, search or !bang shortcut) and load it.", &NavigateInputArgs{}},
	{GetSetting, "Read a runtime setting.", &GetSettingArgs{}},
	{SetSetting, "Store a runtime setting.", &SetSettingArgs{}},
}

// Specs returns the specs of the commands registered on d, in listing order.
func (d *Dispatcher) Specs() []Spec {
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if d.Has(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

// InputSchema returns the JSON schema of the command's arguments, an
// inline object with no $ref indirection.
func (s Spec) InputSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := r.Reflect(s.args)
	schema.Version = ""
	return schema
}

// ToolDefinition is the LLM-facing description of a command.
type ToolDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"input_schema"`
}

// ToolDefinitions describes every command registered on d.
func (d *Dispatcher) ToolDefinitions() []ToolDefinition {
	specs := d.Specs()
	defs := make([]ToolDefinition, 0, len(specs))
	for _, s := range specs {
		defs = append(defs, ToolDefinition{
			Name:        string(s.Name),
			Description: s.Description,
			InputSchema: s.InputSchema(),
		})
	}
	return defs
}

// ToolsJSON renders ToolDefinitions as indented JSON.
func (d *Dispatcher) ToolsJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d.ToolDefinitions(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool definitions: %w", err)
	}
	return data, nil
}
