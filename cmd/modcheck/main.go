// Package main provides the entry point for the modcheck CLI.
//
// modcheck reconciles a mod list exported by the Mint mod manager against
// the authoritative state known to mod.io, flagging mods that are hidden,
// renamed, or deleted server-side.
//
// Usage:
//
//	modcheck --id <USER_ID> --access-token <TOKEN_FILE> <MOD_LIST>
//
// See --help for all available options.
package main

// main is the entry point for modcheck.
func main() {
	Execute()
}
