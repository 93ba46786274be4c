// SPDX-License-Identifier: MPL-2.0

package version

// Current is the version of the amb binary itself.
var Current = MustParse("0.1.0")

// ProtocolVersion is the registry protocol revision the CLI reports.
var ProtocolVersion = New(1, 0, 0)
