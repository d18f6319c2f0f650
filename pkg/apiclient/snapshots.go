package apiclient

// ListSnapshots lists the names of all persisted domain snapshots.
func (c *Client) ListSnapshots() ([]string, error) {
	return listResources[string](c, "/api/v1/snapshots")
}

// SaveSnapshot persists the active domain's full state under its name.
func (c *Client) SaveSnapshot() (string, error) {
	resp, err := createResource[map[string]string](c, "/api/v1/snapshots", nil)
	if err != nil {
		return "", err
	}
	return (*resp)["name"], nil
}

// RestoreSnapshot rebuilds a domain from a persisted snapshot and makes it
// active on the server.
func (c *Client) RestoreSnapshot(name string) error {
	return c.post(resourcePath("/api/v1/snapshots/%s/restore", name), nil, nil)
}

// DeleteSnapshot removes a persisted snapshot.
func (c *Client) DeleteSnapshot(name string) error {
	return c.delete(resourcePath("/api/v1/snapshots/%s", name), nil)
}
