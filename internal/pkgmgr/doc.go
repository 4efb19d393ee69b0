// SPDX-License-Identifier: MPL-2.0

// Package pkgmgr describes the package managers tidyup can drive.
//
// A Profile knows the platform a package manager belongs to, whether it must
// be run with elevated rights, and the fixed argument sets for each
// maintenance step. Profiles only build actions; running them is the job of
// the guard and the runner.
package pkgmgr
