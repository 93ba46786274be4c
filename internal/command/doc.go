// SPDX-License-Identifier: MPL-2.0

// Package command defines the capability every amb command implements and the
// Factory that maps command names to constructors.
//
// Commands are constructed fresh for each invocation. The Factory constructs
// each command once at registration to cache its one-line description, so help
// listings never depend on a constructor succeeding twice.
package command
