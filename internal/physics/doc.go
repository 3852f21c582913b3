// Package physics holds the object state the grab solver writes to.
//
// A [Transform] is an object's world pose. A [RigidBody] wraps a transform
// and accepts kinematic move requests that are resolved when the [World]
// steps. [Apply] is the single mutation point used by grabbed objects: it
// routes a solved pose through the body when one is present and writes the
// transform directly otherwise.
package physics
