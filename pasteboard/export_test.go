package pasteboard

// Exports for testing
var Identity = identity

// ClassifyFile exposes the file-content classifier.
func (c *Classifier) ClassifyFile(path string) Item {
	return c.classifyFile(path)
}

// RefreshFile exposes the file watcher's update path.
func (h *History) RefreshFile(path string, content Item) {
	h.refreshFile(path, content)
}
