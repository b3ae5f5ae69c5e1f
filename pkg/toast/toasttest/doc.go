// Package toasttest provides deterministic collaborators for testing code
// built on package toast: a manually advanced clock, a recording renderer
// and an animator whose transitions are finished by hand.
package toasttest
