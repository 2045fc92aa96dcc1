// Package transfer places files that need no remux at their destination using
// the cheapest operation the requested mode allows.
//
// Move renames and, only for cross-device errors, copies then deletes the
// source. Copy only copies. HardLink only links. HardLinkOrCopy, the default,
// links and falls back to copying on any error.
package transfer
