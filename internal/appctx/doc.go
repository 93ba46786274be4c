// SPDX-License-Identifier: MPL-2.0

// Package appctx holds the state of one amb invocation: the configuration
// manager, the discovered project root, the verbose and dry-run switches, and
// the logger and output streams commands write to.
package appctx
