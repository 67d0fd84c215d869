// Package driving defines the driving ports (primary adapters' interfaces)
// through which the CLI, TUI and MCP surfaces call into the search core.
package driving
