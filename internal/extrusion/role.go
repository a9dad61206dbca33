package extrusion

import "fmt"

// Role is what an extrusion is printed as.
type Role uint8

const (
	RoleNone Role = iota
	RolePerimeter
	RoleExternalPerimeter
	RoleOverhangPerimeter
	RoleInternalInfill
	RoleSolidInfill
	RoleTopSolidInfill
	RoleIroning
	RoleBridgeInfill
	RoleGapFill
	RoleSkirt
	RoleSupportMaterial
	RoleSupportMaterialInterface
	RoleWipeTower
	RoleMixed
)

var roleNames = [...]string{
	RoleNone:                     "none",
	RolePerimeter:                "perimeter",
	RoleExternalPerimeter:        "external_perimeter",
	RoleOverhangPerimeter:        "overhang_perimeter",
	RoleInternalInfill:           "internal_infill",
	RoleSolidInfill:              "solid_infill",
	RoleTopSolidInfill:           "top_solid_infill",
	RoleIroning:                  "ironing",
	RoleBridgeInfill:             "bridge_infill",
	RoleGapFill:                  "gap_fill",
	RoleSkirt:                    "skirt",
	RoleSupportMaterial:          "support_material",
	RoleSupportMaterialInterface: "support_material_interface",
	RoleWipeTower:                "wipe_tower",
	RoleMixed:                    "mixed",
}

// IsExternalPerimeter reports whether r is the outermost, externally
// visible contour of a region.
func (r Role) IsExternalPerimeter() bool {
	return r == RoleExternalPerimeter
}

// IsPerimeter reports whether r is any perimeter role.
func (r Role) IsPerimeter() bool {
	return r == RolePerimeter || r == RoleExternalPerimeter || r == RoleOverhangPerimeter
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// ParseRole is the inverse of Role.String.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return RoleNone, fmt.Errorf("unknown extrusion role %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
