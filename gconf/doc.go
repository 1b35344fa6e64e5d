/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its configuration as a single entity under the
"_c:<package name>" key. The initial state is loaded from the genesis file
"conf" section and later changes go through the extension's own messages.
*/
package gconf
