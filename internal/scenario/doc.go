// Package scenario provides scripted manipulator motion for the simulator.
//
// Every scenario places its objects and hands in Setup and then sets
// absolute hand poses from the elapsed time in Step, so hand noise never
// accumulates. Grabs and releases are issued from Step, which runs strictly
// before the fixed update of the same tick.
//
//   - single: one hand carries a box along a loop while turning it
//   - steady: two hands hold a bar motionless
//   - bar_lift: one end of a bar is lifted while the other stays put
//   - handoff: a bar passes from the left hand to the right hand
//   - twist: two hands counter-rotate their wrists on a bar
//   - orbit: two hands carry a bar around a vertical axis
package scenario
