// Package primitives provides the small value types shared by the vending
// runtime: the Event envelope fed to a Runtime and the MachineConfig that
// describes one machine.
//
// Core invariants:
// - Events are immutable values
// - A MachineConfig that passes Validate can always build a Machine
package primitives
