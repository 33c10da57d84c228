package component

// Lifespan destroys its entity once Remaining seconds of world time pass.
type Lifespan struct {
	Remaining float64
}

var LifespanComponent = NewComponent[Lifespan]()
