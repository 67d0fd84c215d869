// Package driven defines the driven ports (secondary adapters' interfaces)
// for the Agora search core: the remote search gateway, response cache,
// key-value storage, history persistence, token provider, clock, and
// debounce scheduling.
//
// Core services depend only on these interfaces; adapters implement them.
package driven
