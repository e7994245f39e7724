// Package actions implements the high-level operations behind tidygit
// commands: analyzing branches, updating tracking branches, and executing
// deletion plans.
package actions
