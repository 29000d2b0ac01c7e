// Package classfile reads and writes JVM class files.
//
// [Parse] decodes a class into a [File] whose constant [Pool] can be extended
// in place, [Decode] walks a method's instruction stream, and [Code.InsertAt]
// splices new instructions into an existing method while keeping every code
// offset consistent: branches, switch tables, exception ranges, stack map
// frames, line numbers and local variable ranges. [File.Bytes] serializes
// into a fresh buffer; the slice handed to [Parse] is never modified.
package classfile
