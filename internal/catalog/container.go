package catalog

import "fmt"

// ContainerKind identifies how a variant is wrapped. The numeric value is the
// stable container id used as a dispatch table key.
type ContainerKind uint8

const (
	ContainerNone              ContainerKind = 0x00
	ContainerOptionalValue     ContainerKind = 0x01
	ContainerVector            ContainerKind = 0x10
	ContainerOptionalVector    ContainerKind = 0x11
	ContainerIdxVector         ContainerKind = 0x20
	ContainerOptionalIdxVector ContainerKind = 0x21
)

// ContainerKinds lists every container kind in declaration order.
var ContainerKinds = []ContainerKind{
	ContainerNone,
	ContainerOptionalValue,
	ContainerVector,
	ContainerOptionalVector,
	ContainerIdxVector,
	ContainerOptionalIdxVector,
}

type containerInfo struct {
	name   string
	goName string
	goType string // format verb receives the element type
}

var containerInfos = map[ContainerKind]containerInfo{
	ContainerNone:              {"none", "None", "%s"},
	ContainerOptionalValue:     {"optional_value", "OptionalValue", "Optional[%s]"},
	ContainerVector:            {"vector", "Vector", "[]%s"},
	ContainerOptionalVector:    {"optional_vector", "OptionalVector", "OptionalVector[%s]"},
	ContainerIdxVector:         {"idx_vector", "IdxVector", "IdxVector[%s]"},
	ContainerOptionalIdxVector: {"optional_idx_vector", "OptionalIdxVector", "OptionalIdxVector[%s]"},
}

// ID returns the container id.
func (k ContainerKind) ID() uint8 {
	return uint8(k)
}

// IsValid returns true if k is one of the declared container kinds.
func (k ContainerKind) IsValid() bool {
	_, ok := containerInfos[k]
	return ok
}

// String returns the implementing name of the container ("optional_vector").
func (k ContainerKind) String() string {
	if info, ok := containerInfos[k]; ok {
		return info.name
	}

	return fmt.Sprintf("ContainerKind(%#x)", uint8(k))
}

// GoName returns the exported identifier fragment for the container ("OptionalVector").
func (k ContainerKind) GoName() string {
	return containerInfos[k].goName
}

// IsTemplate reports whether the container wraps the value. Only
// ContainerNone is the bare value itself.
func (k ContainerKind) IsTemplate() bool {
	return k != ContainerNone
}

// IsOptional reports whether the container can be absent.
func (k ContainerKind) IsOptional() bool {
	return k&0x01 != 0
}

// IsVector reports whether the container holds a sequence.
func (k ContainerKind) IsVector() bool {
	return k&0xf0 != 0
}

// IsIndexed reports whether the container carries a re-index list.
func (k ContainerKind) IsIndexed() bool {
	return k&0xf0 == 0x20
}

// GoType composes the Go type expression of the container around elem.
// qualifier is prepended to the runtime container type names ("pds.").
func (k ContainerKind) GoType(qualifier, elem string) string {
	info, ok := containerInfos[k]
	if !ok {
		return elem
	}

	if k == ContainerNone || k == ContainerVector {
		return fmt.Sprintf(info.goType, elem)
	}

	return qualifier + fmt.Sprintf(info.goType, elem)
}

// ContainerFromFlags maps the optional/vector/indexed field flags onto a
// container kind. indexed without vector has no container kind.
func ContainerFromFlags(optional, vector, indexed bool) (ContainerKind, bool) {
	if indexed && !vector {
		return ContainerNone, false
	}

	k := ContainerNone
	if optional {
		k |= 0x01
	}

	switch {
	case indexed:
		k |= 0x20
	case vector:
		k |= 0x10
	}

	return k, true
}
