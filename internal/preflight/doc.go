// Package preflight provides readiness checks for the filesystem paths and
// external tools mediasort depends on.
//
// These checks run in two contexts:
//   - The organizer calls EnsureWritableDir before touching the output
//     tree, so a doomed run fails before any file is copied or moved.
//   - The CLI "mediasort deps" command uses RunAll and CheckSystemDeps to
//     display environment health.
package preflight
