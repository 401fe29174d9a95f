// file: internals/helpers/oss/multipartx.go
package helper

import (
	"mime/multipart"
	"sort"
)

// Field names clients commonly use for multi-file uploads, in preference order.
var defaultFileFields = []string{
	"files[]", "files", "file",
	"attachments[]", "attachments",
}

// CollectUploadFiles gathers every non-empty file in form. Preferred fields
// come first; any other file field follows in key order so results are
// stable. maxFiles <= 0 means no cap; the bool reports truncation.
func CollectUploadFiles(form *multipart.Form, maxFiles int, preferred ...string) ([]*multipart.FileHeader, bool) {
	if form == nil || form.File == nil {
		return nil, false
	}
	if len(preferred) == 0 {
		preferred = defaultFileFields
	}

	var out []*multipart.FileHeader
	seen := map[string]bool{}
	take := func(key string) {
		seen[key] = true
		for _, fh := range form.File[key] {
			if fh != nil && fh.Filename != "" {
				out = append(out, fh)
			}
		}
	}
	for _, key := range preferred {
		take(key)
	}

	rest := make([]string, 0, len(form.File))
	for key := range form.File {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		take(key)
	}

	if maxFiles > 0 && len(out) > maxFiles {
		return out[:maxFiles], true
	}
	return out, false
}
