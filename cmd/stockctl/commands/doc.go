// Package commands defines the stockctl CLI and wires dependencies for subcommands.
//
// Commands
//
//   - import <file>          Import a CSV, TXT or XLSX item list
//   - list                   Print the household's current items
//   - delete <id>            Ask the upstream to delete (or decrement) an item
//   - update <id>            Change an item's name or quantity
//   - export <out.xlsx>      Write the current items to a workbook
//
// # Implementation
//
// The root command loads configuration from the environment (and an optional
// .env file), applies flag overrides, and builds the upstream client and
// inventory service before any subcommand runs. Logs go to stderr so command
// output on stdout stays pipeable.
package commands
