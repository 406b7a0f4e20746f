package contextkeys

// ContextKey is the type used for values stored on request contexts.
// A dedicated type avoids collisions with keys set by other packages.
type ContextKey string

const (
	// DBContextKey carries the *gorm.DB handle (pool or transaction) that the
	// current request must use. Tests swap in a transaction through this key.
	DBContextKey ContextKey = "db"
)
