/*
Package x contains the saving bank extensions.

Each extension implements a part of the domain (Handler, Decorator,
Initializer, queries) and they are combined together in the application
router. Extensions depend on each other through small interfaces, so that a
handler can be tested with mocks of its collaborators.
*/
package x
