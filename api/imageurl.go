package api

import "strings"

// NormalizeImageURL turns whatever the API puts in a photo field into a
// fully-qualified URL. The API mixes absolute URLs, root-relative paths
// and bare filenames; anything missing falls back to the placeholder.
func (c *Client) NormalizeImageURL(photo string) string {
	switch {
	case photo == "":
		return c.placeholder
	case strings.HasPrefix(photo, "http://"), strings.HasPrefix(photo, "https://"):
		return photo
	case strings.HasPrefix(photo, "/"):
		return c.origin + photo
	default:
		return c.origin + "/storage/images/" + photo
	}
}
