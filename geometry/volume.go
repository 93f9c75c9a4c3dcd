package geometry

import (
	"fmt"
	"unicode"
)

// Role controls what a transport run records when particles reach a
// volume.
type Role string

// Recognized roles.
const (
	RoleNone           Role = "none"
	RoleCatchIngoing   Role = "catch_ingoing"
	RoleCatchOutgoing  Role = "catch_outgoing"
	RoleRecordDeposits Role = "record_deposits"
)

// ParseRole maps a role string to a Role. The empty string means none.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleNone, RoleCatchIngoing, RoleCatchOutgoing, RoleRecordDeposits:
		return Role(s), nil
	case "":
		return RoleNone, nil
	}
	return RoleNone, fmt.Errorf("unknown role '%s'", s)
}

// Volume is a node of the geometry tree: one shape placed in its parent
// frame, a material, a role and exclusively owned daughters. The parent
// link is a non-owning back-reference.
type Volume struct {
	name      string
	material  string
	role      Role
	shape     Shape
	transform Transform
	parent    *Volume
	daughters []*Volume
}

// checkName enforces the volume naming rule: alphanumeric, capitalized.
// Lowercase keys in a definition are properties, not volumes.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("empty volume name")
	}
	for _, c := range name {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return fmt.Errorf("bad volume name '%s' (expected an alphanumeric string)", name)
		}
	}
	if !unicode.IsUpper([]rune(name)[0]) {
		return fmt.Errorf("bad volume name '%s' (should be capitalised)", name)
	}
	return nil
}

// Name returns the volume name.
func (v *Volume) Name() string { return v.name }

// Path returns the dotted ancestry path, root name included.
func (v *Volume) Path() string {
	if v.parent == nil {
		return v.name
	}
	return v.parent.Path() + "." + v.name
}

// Material returns the material tag.
func (v *Volume) Material() string { return v.material }

// Shape returns the volume solid.
func (v *Volume) Shape() Shape { return v.shape }

// Role returns the current role.
func (v *Volume) Role() Role { return v.role }

// SetRole reassigns the volume role in place.
func (v *Volume) SetRole(role Role) { v.role = role }

// Parent returns the mother volume, nil for the root.
func (v *Volume) Parent() *Volume { return v.parent }

// Daughters returns the direct daughter volumes.
func (v *Volume) Daughters() []*Volume { return v.daughters }

// Transform returns the placement in the parent frame.
func (v *Volume) Transform() Transform { return v.transform }

// GlobalTransform returns the placement in the world frame.
func (v *Volume) GlobalTransform() Transform {
	if v.parent == nil {
		return v.transform
	}
	return v.parent.GlobalTransform().Compose(v.transform)
}

// AABB returns the shape bounding box in the local frame.
func (v *Volume) AABB() AABB { return v.shape.AABB() }

// GlobalAABB returns the bounding box of the placed shape in the world
// frame.
func (v *Volume) GlobalAABB() AABB {
	return v.shape.AABB().TransformedBy(v.GlobalTransform())
}

// GlobalSide classifies a world-frame point against the volume shape.
func (v *Volume) GlobalSide(p Point) int {
	return v.shape.Side(v.GlobalTransform().ToLocal(p))
}

// Descendants returns all daughter volumes, recursively, in depth-first
// order.
func (v *Volume) Descendants() []*Volume {
	var out []*Volume
	for _, d := range v.daughters {
		out = append(out, d)
		out = append(out, d.Descendants()...)
	}
	return out
}
