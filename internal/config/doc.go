// SPDX-License-Identifier: MPL-2.0

// Package config owns amb's global configuration.
//
// The configuration lives in <ambar-root>/config.json, where the ambar root
// defaults to ~/.ambar (%USERPROFILE%\AppData\Local\ambar on Windows) and can be
// moved with AMBAR_HOME. A Manager moves the configuration through its
// lifecycle: computed defaults, then the persisted file, then AMBAR_*
// environment variables. Setters persist immediately.
//
// The file is checked against an embedded CUE schema and the persisted keys
// are read from the validated value by their exact names, so a malformed file
// never leaves the configuration half-updated. Viper writes the file.
package config
