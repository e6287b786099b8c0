// Package runtime implements the copy pipeline stages: collecting answers in dependency
// order, staging the output tree in memory, and applying it under a transaction.
package runtime
