package sourcing

import "fmt"

// FetchError indicates a failed profile fetch from the scraping provider.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sourcing %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("sourcing %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
