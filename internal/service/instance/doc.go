// Package instance keeps a single game running per data folder.
//
// The lock is a file created with O_EXCL that holds the owner's PID. A lock
// whose PID is no longer a live process is considered stale and replaced.
package instance
