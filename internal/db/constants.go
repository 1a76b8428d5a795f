package db

// SQL fragments and formats shared by the query functions.
const (
	// sqlDayWindowClause filters daily_scores to a trailing window of days
	sqlDayWindowClause = "WHERE day >= date('now', ?)"

	// sqlTimeFormat is how timestamps are written so SQLite date functions can read them
	sqlTimeFormat = "2006-01-02 15:04:05"
)
