/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	stderrors "errors"
	"fmt"
)

// Attachment records an access point published by a registration.
type Attachment struct {
	Entity   string
	Name     string
	Replaced bool
}

// Failure records an entity binding that could not be attached.
type Failure struct {
	Entity string
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("binding %s: %v", f.Entity, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Outcome is the per-binding result of a registration.
type Outcome struct {
	Name     string
	Attached []Attachment
	Failed   []Failure
	// Warnings carries a DuplicateAttachmentError for every replaced access point.
	Warnings []error
}

// OK reports whether every binding was attached.
func (o Outcome) OK() bool {
	return len(o.Failed) == 0
}

// Err joins the binding failures, or returns nil when there are none.
func (o Outcome) Err() error {
	if len(o.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(o.Failed))
	for i, f := range o.Failed {
		errs[i] = f
	}
	return fmt.Errorf("register %s: %w", o.Name, stderrors.Join(errs...))
}
