package domain

import "github.com/x-xyz/marketcore/base/ctx"

// Table is the name of a collection in the storage backend
type Table string

const (
	TableAssets      Table = "assets"
	TableListings    Table = "listings"
	TableBids        Table = "bids"
	TableDrops       Table = "drops"
	TableCartEntries Table = "cart_entries"
	TableHealthCheck Table = "healthcheck"
)

// Transactor runs a function as one atomic unit against the storage backend.
// Repository calls made with the ctx passed to run take part in the transaction.
type Transactor interface {
	RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error
}
