package query

/*
	Description:
		Package `query` provides interface for querying mongo db.
		It wraps https://github.com/mongodb/mongo-go-driver, read
		https://godoc.org/go.mongodb.org/mongo-driver/mongo for details.

	Use Case:
		Conditional writes (Patch / CustomPatch / Remove) return ErrNotFound
		when the selector matches nothing. Repositories rely on that to
		implement compare-and-set transitions.
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is error for unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

type patchOp struct {
	patchMany bool
}

// PatchOp is an alias for functional argument
type PatchOp func(*patchOp)

// WithPatchMany specifies patchMany setting. To patch all entries selected, set patchMany = true.
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

// Mongo abstract the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	// Return ErrDuplicateKey if it violates an unique index
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne get data from the table
	// Return ErrNotFound if query does not match any documents
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// FindOneSorted is FindOne picking the first document of the given sort order
	FindOneSorted(context ctx.Ctx, table domain.Table, sortFields []string, query, result interface{}) error

	// Count return counting for matched entry in the table
	// https://docs.mongodb.com/manual/reference/method/db.collection.countDocuments
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Search sort order by `sort` argument (ex "timestamp" ascending, or "-timestamp" descending)
	// if `sort` is "", the sort action is skipped, and the MongoDB does not guarantee the order of query results.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// SearchNSorts sort with multiple fields, if you use compound key, make sure key order is correct. https://docs.mongodb.com/manual/tutorial/sort-results-with-indexes/
	SearchNSorts(context ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error

	// Remove remove an entry from the table
	// Return ErrNotFound if selector does not match any documents
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// RemoveAll remove all entries matching the selector from the table
	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)

	// Patch patch an entry, if the selector not exist, return err.
	// To patch all entries selected, set WithPatchMany(true).
	// Return ErrNotFound if selector does not match any documents
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error

	// PatchMany is Patch with WithPatchMany(true) that reports the number of matched documents
	PatchMany(context ctx.Ctx, table domain.Table, selector, update interface{}) (matchedCnt int64, err error)

	// CustomPatch patch an entry with customized mongo query
	// Return ErrNotFound if upsert is false and selector does not match any documents,
	CustomPatch(context ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error

	// CreateIndexes ensures the given indexes exist on the table
	CreateIndexes(context ctx.Ctx, table domain.Table, models []mongo.IndexModel) error

	// Ping checks the primary is reachable
	Ping(context ctx.Ctx) error

	// RunWithTransaction runs `run` inside a session transaction. Writes made
	// with the ctx passed to `run` commit or abort together.
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
