package extrusion

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func p(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func TestRole_TextRoundTrip(t *testing.T) {
	t.Parallel()

	for r := RoleNone; r <= RoleMixed; r++ {
		text, err := r.MarshalText()
		require.NoError(t, err)
		var back Role
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, r, back)
	}

	assert.Equal(t, "role(200)", Role(200).String())
	_, err := ParseRole("brim")
	assert.Error(t, err)

	var wrapper struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"external_perimeter"}`), &wrapper))
	assert.True(t, wrapper.Role.IsExternalPerimeter())
	assert.True(t, wrapper.Role.IsPerimeter())
	assert.False(t, RoleGapFill.IsPerimeter())
}

func TestFold_OwnerIsOutermostIdentity(t *testing.T) {
	t.Parallel()

	outer := NewPath(RoleExternalPerimeter, p(0, 0), p(1, 0))
	inner := NewPath(RolePerimeter, p(0, 1), p(1, 1))
	loop := NewLoop(*outer, *inner)
	loose := NewPath(RoleGapFill, p(5, 5), p(6, 6))
	tree := &Collection{Entities: []Entity{loop, loose}}

	leaves := Leaves(tree, nil)
	require.Len(t, leaves, 3)
	assert.Equal(t, loop.ID, leaves[0].Owner)
	assert.Equal(t, outer.ID, leaves[0].ID)
	assert.Equal(t, loop.ID, leaves[1].Owner)
	assert.Equal(t, loose.ID, leaves[2].Owner, "no ancestor identity: own id")

	ext := ExternalPerimeters(tree)
	require.Len(t, ext, 1)
	assert.Equal(t, RoleExternalPerimeter, ext[0].Role)
	assert.True(t, HasExternalPerimeter(tree))
	assert.False(t, HasExternalPerimeter(loose))
}

func TestFold_Path3DProjects(t *testing.T) {
	t.Parallel()

	mp := &MultiPath3D{ID: uuid.New(), Paths: []Path3D{{
		ID:     uuid.New(),
		Role:   RoleExternalPerimeter,
		Points: []r3.Vec{{X: 1, Y: 2, Z: 0.3}, {X: 3, Y: 4, Z: 0.5}},
	}}}
	leaves := Leaves(mp, nil)
	require.Len(t, leaves, 1)
	assert.Equal(t, []r2.Vec{p(1, 2), p(3, 4)}, []r2.Vec(leaves[0].Points))
	assert.Equal(t, mp.ID, leaves[0].Owner)
}

func TestFirstLastPoint(t *testing.T) {
	t.Parallel()

	tree := &Collection{Entities: []Entity{
		NewMultiPath(Path{Role: RolePerimeter}),
		NewPath(RolePerimeter, p(1, 1), p(2, 2)),
		NewPath(RolePerimeter, p(3, 3), p(4, 4)),
		NewPath(RolePerimeter),
	}}
	first, ok := FirstPoint(tree)
	require.True(t, ok)
	assert.Equal(t, p(1, 1), first)

	last, ok := LastPoint(tree)
	require.True(t, ok)
	assert.Equal(t, p(4, 4), last)

	_, ok = FirstPoint(&Collection{})
	assert.False(t, ok)
	_, ok = LastPoint(&Collection{})
	assert.False(t, ok)
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	l := NewLoop()
	assert.Equal(t, l.ID, Identity(l))
	assert.Equal(t, uuid.Nil, Identity(&Collection{}))
}
