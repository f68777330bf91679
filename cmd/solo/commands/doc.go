// Package commands defines the solo CLI and wires dependencies for subcommands.
//
// Commands
//
//   - (none)       Open the terminal side panel and options
//   - run          Run an action over text, the way the popup does
//   - menu list    Print the context menu registration
//   - menu click   Simulate a context menu click on a selection
//   - key          Set, clear or inspect the stored API key
//   - serve        Serve the HTTP relay for browser front-ends
//
// # Implementation
//
// The root command loads .env and the config file, then builds the logger,
// credential store, completion client and dispatch coordinator before any
// subcommand runs. Every surface dispatches through that one coordinator.
package commands
