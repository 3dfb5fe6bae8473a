/*
Package crowd defines the common interfaces that tie the subpackages
together, as well as implementations of the simpler components where an
interface would be more overhead than help.

Request scoped information (block time, height, chain id, logger) travels
through context.Context between the application shell, decorators and
handlers. For every value XYZ of type T supported by the context there are
two functions:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

Extensions may enrich the context with their own keys, for example the
authentication conditions of the current caller.
*/
package crowd
