package image

import (
	"strings"
	"time"
)

// Extension returns filename from its last '.' onwards, dot included, or ""
// when there is no dot. "photo." yields ".".
func Extension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	return filename[i:]
}

// ObjectKey builds "<baseFolder>/YYYY/MM/DD/<id><extension>".
func ObjectKey(baseFolder string, now time.Time, id, filename string) string {
	return baseFolder + "/" + now.Format("2006/01/02") + "/" + id + Extension(filename)
}

// OptimizerURL points the image optimizer at key. The bucket is left out
// because the optimizer project is already bound to it.
func OptimizerURL(domain, projectID, key, query string) string {
	return domain + "/" + projectID + "/" + key + "?" + query
}
