package component

// Name is the display name of an actor, used in logs and events.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
