package model

// Abilities is the capability set the current user holds on a subject
// (the team or a single collection).
type Abilities struct {
	Read           bool
	Update         bool
	CreateDocument bool
}
