package gui

import (
	"maps"

	"github.com/zjrosen/loom/pkg/host"
)

// MergeTags overwrites the keys in updates onto elem's persisted tags,
// leaving every other key untouched. Hosts only observe whole-map writes, so
// this reads the current map, applies the updates, and writes the whole map
// back; it never edits a read snapshot in place.
func MergeTags(elem host.Element, updates host.Tags) {
	tags := elem.Tags()
	if tags == nil {
		tags = make(host.Tags, len(updates))
	}
	maps.Copy(tags, updates)
	elem.SetTags(tags)
}
