package component

// Mesh is the rectangle drawn for an entity, centered on its transform.
type Mesh struct {
	Width  float64
	Height float64
}

var MeshComponent = NewComponent[Mesh]()
