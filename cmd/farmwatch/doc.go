// Command farmwatch keeps an HTML status page of the render farm up to date.
//
// Running farmwatch with no subcommand (or "farmwatch run") polls the
// configured backend until interrupted, rewriting the status document each
// cycle and opening it in the desktop viewer once. "farmwatch once" performs a
// single cycle, "farmwatch jobs" prints the same views as terminal tables, and
// "farmwatch config" creates or displays the TOML configuration.
package main
