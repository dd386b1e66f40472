// Package errors provides structured errors for the arena simulator.
//
// Every error carries a Code, a message, an optional cause and metadata.
// Besides the generic codes (NotFound, InvalidArgument, Internal...) the
// package defines the arena's usage taxonomy:
//   - MalformedExpression: dice notation that does not parse
//   - InvalidConfiguration: out-of-range or contradictory options
//   - InvalidCombatState: the resolver was handed an empty or terminal side
//   - MemberNotFound: a party operation on a combatant that is not a member
//
// None of these are retried; callers surface them at once.
//
// # Basic Usage
//
//	err := errors.MalformedExpressionf("cannot parse %q", text)
//	err := errors.MemberNotFound("not in party").WithMeta("id", id)
//
// Wrapping keeps the code of the innermost structured error:
//
//	if err := repo.Get(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to load run")
//	}
//
// # Validation
//
//	vb := errors.NewConfigValidationBuilder()
//	errors.ValidateRange("years", opts.Years, 1, 1000, vb)
//	if err := vb.Build(); err != nil {
//	    return err // CodeInvalidConfiguration
//	}
package errors
