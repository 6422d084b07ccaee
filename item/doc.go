// Package item reads the items to be backed up and decides which of them
// are due, by evaluating each item's condition against the item's own
// backup history.
package item
