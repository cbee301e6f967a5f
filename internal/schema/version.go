package schema

// Version holds the items valid as of that version. Versions form a singly
// linked chain through their previous version.
type Version struct {
	name     string
	previous *Version
	items    []*Item
	pkg      *Package
}

// NewVersion declares a version. previous is nil for the first version.
// Every item must be declared by exactly one version.
func NewVersion(name string, previous *Version, items ...*Item) *Version {
	v := &Version{name: name, previous: previous, items: items}

	for _, it := range items {
		if it != nil && it.version == nil {
			it.version = v
		}
	}

	return v
}

func (v *Version) Name() string { return v.name }

// Previous returns the predecessor, or nil for the first version.
func (v *Version) Previous() *Version { return v.previous }

// Items returns the items in declaration order.
func (v *Version) Items() []*Item { return v.items }

// Package returns the owning package.
func (v *Version) Package() *Package { return v.pkg }

// FindItem returns the item called name.
func (v *Version) FindItem(name string) (*Item, bool) {
	for _, it := range v.items {
		if it.name == name {
			return it, true
		}
	}

	return nil, false
}

// Entities returns the entities of the version that are not deleted,
// aliases included.
func (v *Version) Entities() []*Item {
	var out []*Item

	for _, it := range v.items {
		if it.entity && it.lifecycle != LifecycleDeleted {
			out = append(out, it)
		}
	}

	return out
}

func (v *Version) String() string {
	if v.pkg == nil {
		return v.name
	}

	return v.pkg.name + "." + v.name
}
