package view

// Tabs returns the ordered tab list for the primary dimension: the Recent
// sentinel followed by the platform tabs or the folders.
func Tabs(primary Dimension, platforms, folders []string) []string {
	source := platforms
	if primary == Folder {
		source = folders
	}
	tabs := make([]string, 0, len(source)+1)
	tabs = append(tabs, Recent)
	return append(tabs, source...)
}

// Direction returns the sign of the index change when switching from tab
// from to tab to. It is 0 when either tab is not in tabs or nothing moved.
func Direction(tabs []string, from, to string) int {
	oldIndex := indexOf(tabs, from)
	newIndex := indexOf(tabs, to)
	if oldIndex < 0 || newIndex < 0 {
		return 0
	}
	switch {
	case newIndex > oldIndex:
		return 1
	case newIndex < oldIndex:
		return -1
	}
	return 0
}

func indexOf(tabs []string, tab string) int {
	for i, t := range tabs {
		if t == tab {
			return i
		}
	}
	return -1
}
