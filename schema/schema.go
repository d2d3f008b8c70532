// Package schema has configs, models and shared types for all parts of keydriver.
package schema

// Column represents one variable of a dataset. Numeric columns carry Values;
// categorical columns carry the per-row Level strings instead.
type Column struct {
	Name   string     `json:"name"`
	Kind   DriverKind `json:"kind"`
	Values []float64  `json:"values,omitempty"`
	Levels []string   `json:"levels,omitempty"`
}

// Dataset is the observation set for a single analysis run. Rows are
// respondents; Weights is nil for an unweighted run. The engine treats a
// Dataset as read-only once a run starts.
type Dataset struct {
	Rows    int
	Columns []Column
	Weights []float64
}

// Column returns the column with the given name, or nil if absent.
func (d *Dataset) Column(name string) *Column {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i]
		}
	}
	return nil
}

// HasColumn reports whether a column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.Column(name) != nil
}

// Weighted reports whether the dataset carries an observation weight vector.
func (d *Dataset) Weighted() bool {
	return d.Weights != nil
}
