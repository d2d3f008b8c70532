package schema

// MethodDefinition describes one importance method for display purposes.
type MethodDefinition struct {
	Name    Method   `json:"name"`
	Purpose string   `json:"purpose"`
	Basis   string   `json:"basis"`
	Notes   []string `json:"notes,omitempty"`
}

// MethodsRenderModel is the complete render model for method definitions.
type MethodsRenderModel struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Methods     []MethodDefinition `json:"methods"`
}
