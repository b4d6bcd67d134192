// Package analyzer breaks a string into user-perceived characters and shows
// how each one is stored as bytes under UTF-8 and Shift_JIS.
//
// Every call recomputes its result from scratch. An Analyzer holds only the
// optional legacy codec it was built with, so a single value is safe for
// concurrent use.
//
// Failures of the legacy codec are reported as data: a record's legacy view
// carries IsValid=false and a status instead of an error, and a character
// the codec cannot handle never stops the remaining characters from being
// analyzed.
package analyzer
