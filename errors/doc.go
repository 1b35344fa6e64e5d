/*
Package errors implements custom error interfaces for the saving bank.

The idea is to reuse as many errors from this package as possible. Every
failure of a saving bank operation is one of the registered root errors below,
so that clients can branch on the ABCI code instead of parsing messages.

If you want to register a custom error - use Register(code, description).
For reusing errors - use Errxxx.New and Errxxx.Newf, or Wrap(Errxxx, "...").

There is also support for stacktraces. Please ensure you create the custom error using
ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation to ensure we attach
a stacktrace. If you wrap multiple times, we only record the first wrap with the stacktrace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context for the error
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
