package component

// Tag is a free-form label carried into collision diagnostics.
type Tag struct {
	Name string
}

var TagComponent = NewComponent[Tag]()

// Disabled takes an entity out of physics, rendering and gameplay updates.
type Disabled struct{}

var DisabledComponent = NewComponent[Disabled]()
