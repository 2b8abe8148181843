package postgres

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations
const pgUniqueViolation = "23505"
