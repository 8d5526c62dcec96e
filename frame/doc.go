// Package frame provides the typed in-memory table behind tabcat.
//
// A DataFrame is a Table of fixed-width rows plus an ordered list of unique
// column names. Cells are Values: a closed set of Integer, Float, Text and
// Missing. Columns are extracted as detached Series, compared against a
// target to build a Mask, and the mask is applied back to the frame:
//
//	age, err := df.Column("Age")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	adults, err := df.Filter(age.GreaterEqual(frame.Int(18)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Comparison Rules
//
//   - Integer against Integer compares exactly
//   - Integer against Float promotes to float64, in both directions
//   - Text against Text compares byte-wise
//   - Text against a number is false for every operator
//   - Missing is false for every operator, != included
//
// Value.Equal is a separate, structural identity check under which Missing
// equals Missing.
//
// # Column Kinds
//
// Kinds are ranked Integer < Float < Text. Classify picks the narrowest kind
// for a raw token and Widen combines the evidence of several tokens, so a
// single Text token makes its whole column Text.
//
// # Errors
//
// Contract violations are reported with the sentinel errors declared in this
// package and can be matched with errors.Is:
//
//	if _, err := df.Select("missing"); errors.Is(err, frame.ErrNameNotFound) {
//	    ...
//	}
package frame
