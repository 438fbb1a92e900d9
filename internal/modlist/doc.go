// Package modlist reads the mod list files exported by Mint.
// A mod list is a UTF-8 text file containing mod references separated by
// arbitrary whitespace.
package modlist
