// SPDX-License-Identifier: MPL-2.0

// Package platform holds OS name constants and the Windows reserved-name check
// applied to package names, which become directory names under ambar_modules.
package platform
