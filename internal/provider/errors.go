package provider

// AuthError reports a rejected or unusable credential set.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TransferError reports a network or remote failure during a fetch.
type TransferError struct {
	Dataset string
	Err     error
}

func (e *TransferError) Error() string {
	return "transfer of " + e.Dataset + " failed: " + e.Err.Error()
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
