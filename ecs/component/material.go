package component

import "github.com/milk9111/gsandbox/common"

// ColorParameter is the vector parameter geometry actors drive.
const ColorParameter = "Color"

// Material is a dynamic material instance with a single vector parameter.
type Material struct {
	Parameter string
	Color     common.LinearColor
}

// SetVectorParameter sets the bound parameter. Unknown names are ignored.
func (m *Material) SetVectorParameter(name string, c common.LinearColor) bool {
	if m == nil || name != m.Parameter {
		return false
	}
	m.Color = c
	return true
}

var MaterialComponent = NewComponent[Material]()
