package services

import (
	"net/url"
	"strings"
)

// AssetKind is a static upload directory served next to the API.
type AssetKind string

const (
	AssetUserPic  AssetKind = "userpic"
	AssetEventPic AssetKind = "eventpic"
	AssetPlacePic AssetKind = "placepic"
	AssetMerchPic AssetKind = "merchpic"
	AssetUploads  AssetKind = "uploads"
)

// AssetURL builds the public URL of an uploaded file. Empty names yield "".
func (c *Client) AssetURL(kind AssetKind, name string) string {
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return ""
	}
	return c.assetURL + "/" + string(kind) + "/" + url.PathEscape(name)
}
