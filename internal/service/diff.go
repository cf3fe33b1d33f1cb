package service

import "sort"

// Diff computes the catalog delta between the server's current checksum
// map and the client's cached one. changed holds ids the client must fetch
// (new on the server, or present with a different checksum); deleted holds
// ids the client caches that no longer exist on the server. Both slices
// come back sorted for deterministic responses.
func Diff(server, client map[string]string) (changed, deleted []string) {
	for id, sum := range server {
		if clientSum, ok := client[id]; !ok || clientSum != sum {
			changed = append(changed, id)
		}
	}
	for id := range client {
		if _, ok := server[id]; !ok {
			deleted = append(deleted, id)
		}
	}

	sort.Strings(changed)
	sort.Strings(deleted)

	return changed, deleted
}
