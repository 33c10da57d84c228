package component

// HubOwned marks actors spawned by a geometry hub so a reload can retire them.
type HubOwned struct {
	Payload string
}

var HubOwnedComponent = NewComponent[HubOwned]()
