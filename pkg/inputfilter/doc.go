// Package inputfilter compiles a forms tree plus an explicit partial
// specification into a validation engine. Compilation resolves one input
// record per leaf path using a strict precedence: explicit specification
// entry, then the node's own hint capability, then the enclosing fieldset's
// hint for that child, then the default record. The compiled engine runs
// filter chains then validator chains per field, supports validation-group
// subset selection, and keeps raw (pre-filter) values alongside filtered
// ones.
//
// The compiled specification does not track tree mutations: callers that
// change the tree after Compile must compile again. Validating with a stale
// engine is a caller error with undefined results. Engines are not safe for
// concurrent use; create one per logical request.
package inputfilter
