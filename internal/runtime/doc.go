// Package runtime provides the execution context for tidygit commands.
//
// It encapsulates shared dependencies needed by actions, such as the
// repository handle, logger, and repository root path.
package runtime
