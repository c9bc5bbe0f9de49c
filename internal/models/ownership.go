package models

// ResourceKind names a resource whose owner can be resolved.
type ResourceKind string

const (
	ResourceSchool  ResourceKind = "school"
	ResourceClass   ResourceKind = "class"
	ResourceStudent ResourceKind = "student"
	ResourceSession ResourceKind = "session"
)
