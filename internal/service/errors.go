package service

// ValidationError is a client input error: the handler maps it to a 400 and
// guarantees no remote call was made before it was returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
