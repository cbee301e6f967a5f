package schema

//go:generate go tool stringer -type=Lifecycle -trimprefix=Lifecycle -output=lifecycle_string.go

// Lifecycle tags what an Item does in its Version.
type Lifecycle int

const (
	LifecycleNew Lifecycle = iota
	LifecycleIdentical
	LifecycleModified
	LifecycleDeleted
)

// ParseLifecycle parses the lower-case name used by the YAML front end. The
// empty string is LifecycleNew.
func ParseLifecycle(s string) (Lifecycle, bool) {
	switch s {
	case "", "new":
		return LifecycleNew, true
	case "identical":
		return LifecycleIdentical, true
	case "modified":
		return LifecycleModified, true
	case "deleted":
		return LifecycleDeleted, true
	default:
		return LifecycleNew, false
	}
}
