package ports

// Logger is the logging surface services depend on.
type Logger interface {
	Debug(message string)
	Info(message string)
	Error(message string)
}
