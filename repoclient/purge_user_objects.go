package repoclient

import (
	"fmt"
)

// PurgeUserObjects deletes every object owned by the given principal, returning the PIDs
// that were purged. Deletion is best-effort: a failure to purge one object is recorded
// and the remaining objects are still attempted.
//
// As a safety guard it refuses to operate on the administrative principal, since purging
// the admin's objects would destroy repository system objects.
func (c *Client) PurgeUserObjects(owner, adminPrincipal string) ([]string, error) {
	if owner == adminPrincipal {
		return nil, fmt.Errorf("refusing to purge objects owned by administrative principal %q", owner)
	}
	pids, err := c.ListObjectsByOwner(owner)
	if err != nil {
		return nil, err
	}
	var purged []string
	var firstErr error
	for _, pid := range pids {
		if err := c.PurgeObject(pid); err != nil {
			c.logger.Printf("Failed to purge %s: %s", pid, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		purged = append(purged, pid)
	}
	return purged, firstErr
}
