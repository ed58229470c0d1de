package i

// Logger is the component logger used by services and adapters.
type Logger interface {
	Info(message string)
	Warning(message string)
	Error(message string)
}

// FieldLogger is a Logger that can stamp every line with a key/value pair.
type FieldLogger interface {
	Logger
	With(key, value string) Logger
}
