// Package domain contains the core business entities for the Agora search
// client: queries, per-domain search results, search history, filters, the
// error taxonomy, and the search state machine.
//
// The domain layer has no dependencies on adapters or external services.
package domain
