package component

// Mover sets how fast an entity walks (units/s) and turns (rad/s).
type Mover struct {
	Speed        float64
	AngularSpeed float64
}
