package registro

import (
	"context"

	"github.com/iiTzGuzz/LLMSDATA/pkg/kernel"
)

// Repository persists finished records. Implementations own failure
// semantics for partial inserts.
type Repository interface {
	// BulkInsert stores a batch of records and returns the number inserted.
	BulkInsert(ctx context.Context, records []*Registro) (int, error)

	// Latest retrieves the most recently inserted rows, newest first.
	Latest(ctx context.Context, limit int) ([]StoredRegistro, error)

	// List retrieves one page of rows, newest first, with totals.
	List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[StoredRegistro], error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)
}
