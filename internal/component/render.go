package component

import (
	"github.com/overworld/core/internal/core/ecs"
	"github.com/overworld/core/internal/navmap"
	"github.com/overworld/core/internal/resource"
)

// Renderable is the visual of an entity as handed to the render back-end.
type Renderable struct {
	Mesh    resource.ID
	Visible bool
}

// Ship lets a land unit embark. Hull is a weak reference to the entity that
// renders the ship; while embarked it is shown, the unit itself is hidden and
// the unit navigates with SeaMask instead of LandMask.
type Ship struct {
	Hull            ecs.EntityID
	Embarked        bool
	ToggleRequested bool
	LandMask        navmap.Area
	SeaMask         navmap.Area
}
