// Package query provides a small interface for querying mongo, wrapping
// https://github.com/mongodb/mongo-go-driver for the journal repositories.
package query

import (
	"fmt"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
)

var (
	// ErrNotFound is the mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is returned when violating a unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")
)

// Mongo abstracts the mongo layer
type Mongo interface {
	// Insert inserts a new document into the table
	Insert(c ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne gets one document from the table
	FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count returns the number of matched documents in the table
	Count(c ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Search sorts by the `sort` argument (ex "time" ascending, "-time"
	// descending); an empty sort leaves the order unspecified
	Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove removes one document, returning ErrNotFound when the selector
	// does not match
	Remove(c ctx.Ctx, table domain.Table, selector interface{}) error
}
