package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query and
// Singleton fields, which the Scheduler initializes on Register, as well as custom
// state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
