package ecs

// UpdateFrame is handed to every system during a single Scheduler pass.
// Structural changes made through Commands are applied once all systems ran.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  NewCommands(),
		Storage:   storage,
	}
}
