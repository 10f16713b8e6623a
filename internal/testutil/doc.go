// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Helpers cover environment variables (MustSetenv, MustUnsetenv), the home
// and config directories (SetHomeDir, SetConfigDir) and the filesystem
// (MustChdir, MustMkdirAll, MustWriteFile).
package testutil
