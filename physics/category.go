package physics

//go:generate go tool stringer -type=Category -trimprefix=Category

// Category is a collision class bitmask. A body has one category and two
// masks naming the categories it wants contact reports for and the ones it
// physically collides with.
type Category uint32

const (
	CategoryNone       Category = 0
	CategoryMonster    Category = 1 << 0
	CategoryProjectile Category = 1 << 1
	CategoryPlayer     Category = 1 << 2
	CategoryGoal       Category = 1 << 3
	CategoryBorder     Category = 1 << 4
	CategoryAll        Category = 0xFFFFFFFF
)

// Has reports whether any bit of other is set in c.
func (c Category) Has(other Category) bool {
	return c&other != 0
}

// contacts reports whether a pair generates a contact notification.
func contacts(a, b *Body) bool {
	return a.category.Has(b.contactTest) || b.category.Has(a.contactTest)
}

// collides reports whether a pair gets a physical response. Chipmunk resolves
// a pair symmetrically, so either side asking for the collision is enough.
func collides(a, b *Body) bool {
	return a.collision.Has(b.category) || b.collision.Has(a.category)
}
