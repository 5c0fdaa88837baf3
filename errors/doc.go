/*
Package errors implements custom error interfaces for docsign.

Reuse the root errors declared in this package wherever possible and declare
custom errors only when an extension needs a verdict the client must be able
to tell apart (see x/contract for the signing verdicts).

To register a custom root error use Register(code, description). Each code
must be unique, a reused code panics on startup.

To create an error instance wrap a root error at the point of failure:

	errors.Wrap(errors.ErrNotFound, "record")
	errors.ErrModel.Newf("threshold %d", n)

The innermost wrap records a stack trace. Do not declare instances as global
variables (`var ErrFoo = errors.ErrModel.New("foo")`) or the recorded stack
trace points to package initialization.

Once you have an error, use fmt to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
