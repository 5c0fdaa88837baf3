/*

Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps its configuration under its own package name. The
configuration is loaded from the genesis file ("conf" section) on startup,
validated and persisted. Handlers read it back from the store when they
need it.

*/
package gconf
