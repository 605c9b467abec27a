package scene

import "github.com/plus3/bounce/ecs"

// PhysicsSystem advances the physics world. Contact callbacks run inside its
// Execute.
type PhysicsSystem struct {
	World ecs.Singleton[World]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	if w := s.World.Get(); w != nil && w.World != nil {
		w.Step(frame.DeltaTime)
	}
}
