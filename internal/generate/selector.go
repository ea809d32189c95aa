// Package generate assembles themed shops from catalog snapshots: rule
// driven item-pool filtering, weighted random selection under cardinality
// constraints, keeper and location resolution, and pricing baseline setup.
package generate

// NPCSelector chooses how the shop keeper is resolved: a random synthetic
// keeper or a specific catalog NPC by id. The zero value means random.
type NPCSelector struct {
	id string
}

// RandomNPC requests a synthesized keeper.
func RandomNPC() NPCSelector { return NPCSelector{} }

// SpecificNPC requests the catalog NPC with the given id. An empty id is
// equivalent to RandomNPC.
func SpecificNPC(id string) NPCSelector { return NPCSelector{id: id} }

// Random reports whether a synthetic keeper was requested.
func (s NPCSelector) Random() bool { return s.id == "" }

// ID returns the requested catalog NPC id, or "" for random.
func (s NPCSelector) ID() string { return s.id }

// LocationSelector chooses how the shop location is resolved: a random
// catalog city or a verbatim label. The zero value means random.
type LocationSelector struct {
	name string
}

// RandomLocation requests a uniformly sampled catalog city.
func RandomLocation() LocationSelector { return LocationSelector{} }

// NamedLocation requests the given label verbatim. An empty name is
// equivalent to RandomLocation.
func NamedLocation(name string) LocationSelector { return LocationSelector{name: name} }

// Random reports whether a sampled city was requested.
func (s LocationSelector) Random() bool { return s.name == "" }

// Name returns the requested label, or "" for random.
func (s LocationSelector) Name() string { return s.name }
