/*
Package errors provides semantic error types for the pivot library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound            = errors.New("not found")
	    ErrAlreadyExists       = errors.New("already exists")
	    ErrInvalidInput        = errors.New("invalid input")
	    ErrUnknownEntityType   = errors.New("unknown entity type")
	    ErrDuplicateAttachment = errors.New("access point replaced")
	)

Usage:

	outcome, err := reg.Register(whois)
	if err != nil {
	    // the registration itself was malformed
	    return err
	}
	for _, f := range outcome.Failed {
	    if errors.IsUnknownEntityType(f.Err) {
	        // f.Err.Error() names the closest legal entity types
	    }
	}

	// Create typed errors
	err := errors.NewNotFoundError("provider", "AzureSentinel")
	err := errors.NewValidationError("Name", "is required")
	err := errors.NewUnknownEntityTypeError("Hots", []string{"Host"}, nil)

ErrDuplicateAttachment is informational: a registration that replaces an
existing access point still succeeds, and the replacement is reported as a
warning on the outcome.
*/
package errors
