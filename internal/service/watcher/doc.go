// Package watcher reports changes to a single file, such as settings.dat
// being edited while a game runs. Bursts of writes are collapsed into one
// notification.
package watcher
