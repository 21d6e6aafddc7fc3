package errors

// Op names the upstream call an error came from, e.g. content.fetch_chapters.
type Op struct {
	Module string
	Name   string
}

func (o Op) String() string {
	return o.Module + "." + o.Name
}

// Wrap attaches o and a short message to err. A nil err stays nil.
func (o Op) Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: o, Msg: msg, Err: err}
}

// OpError is an error annotated with the operation that produced it.
type OpError struct {
	Op  Op
	Msg string
	Err error
}

func (e *OpError) Error() string {
	return e.Op.String() + ": " + e.Msg + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }
