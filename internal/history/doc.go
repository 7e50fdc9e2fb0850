// Package history tracks document edit snapshots for undo and redo.
package history
