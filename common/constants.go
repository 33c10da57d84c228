package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed update rate the game loop runs at.
	TPS = 60
)
