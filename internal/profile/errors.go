package profile

import "errors"

var (
	// ErrCapacityExceeded is raised when a zone index falls outside the zone table.
	ErrCapacityExceeded = errors.New("profile: zone table capacity exceeded")

	// ErrUnbalancedZone is raised when a zone is closed out of LIFO order or twice.
	ErrUnbalancedZone = errors.New("profile: unbalanced zone end")

	// ErrLabelConflict is returned by Register when an index is already
	// registered under a different label.
	ErrLabelConflict = errors.New("profile: zone index registered with a different label")

	// ErrZonesActive is returned by Reset while zones are still open.
	ErrZonesActive = errors.New("profile: zones still active")
)
