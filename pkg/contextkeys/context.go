package contextkeys

type contextKey string

// DBContextKey holds the request scoped *gorm.DB, both in the gin context and in the request context.
const DBContextKey = contextKey("db")
