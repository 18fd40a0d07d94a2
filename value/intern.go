/*
File    : gomixvm/value/intern.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package value

import "github.com/josharian/intern"

// Intern canonicalizes s against the process-wide string pool, so that
// string constants sharing the same content share the same backing
// storage. This resolves the data model's owned-strings-vs-interning open
// question in favor of interning: every String Value constructed through
// this helper borrows from the pool instead of allocating a fresh copy per
// occurrence.
func Intern(s string) string { return intern.String(s) }

// InternedString builds a String Value whose payload has been interned.
func InternedString(s string) Value { return String(Intern(s)) }
