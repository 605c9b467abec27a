package scene

// Jukebox plays the game's music and effects.
type Jukebox interface {
	StartMusic()
	StopMusic()
	Pop()
}

// Silent is a Jukebox that plays nothing.
type Silent struct{}

func (Silent) StartMusic() {}
func (Silent) StopMusic()  {}
func (Silent) Pop()        {}
