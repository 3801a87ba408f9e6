package ports

// Dispatcher runs functions on the single logical execution context that owns the display.
// Implementations must run posted functions one at a time, in the order they were posted.
type Dispatcher interface {
	Post(fn func())
}
