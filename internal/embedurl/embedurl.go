// Package embedurl builds the URLs for the embedding service surfaces
// and defines the origin the outbound lightbox relay is tagged with.
package embedurl

import "net/url"

// Origin is the embedding service origin. Outbound bridge messages are
// dispatched with this origin so the embedded document accepts them.
const Origin = "https://embed.tagnology.co"

// DefaultPlatform is the platform identifier sent with manifest requests
// when none is configured.
const DefaultPlatform = "91APP"

// Display returns the widget display surface URL for a folder.
// Floating-media widgets render full screen inside their container.
func Display(folderID, pageURL string, floatingMedia bool) string {
	q := url.Values{}
	q.Set("folderId", folderID)
	q.Set("page", pageURL)
	if floatingMedia {
		q.Set("fullScreen", "true")
	}
	return Origin + "/display?" + q.Encode()
}

// Lightbox returns the lightbox surface URL for a page.
func Lightbox(pageURL string) string {
	q := url.Values{}
	q.Set("page", pageURL)
	return Origin + "/lightBox?" + q.Encode()
}
