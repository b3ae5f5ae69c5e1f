package toast

import "cmp"

// Compare orders requests by priority alone. It returns a positive number
// when a should be shown before b and zero for equal priorities; arrival
// order among equals is kept by the Queue.
func Compare(a, b Request) int {
	return cmp.Compare(a.Priority, b.Priority)
}
