// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors for user-facing failures.
//
// An ActionableError names the operation that failed, the resource involved
// and concrete next steps. Well-known failures are catalogued by Id so the same
// advice is given wherever they surface.
package issue
