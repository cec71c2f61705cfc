package core

// Logger is any structured/leveled logger.
// args may contain errors, key/value maps and at most one Person (the user behind the request).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies the authenticated user a log entry relates to.
type Person struct {
	ID    string
	Name  string
	Email string
}
