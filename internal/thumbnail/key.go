package thumbnail

import "strings"

// thumbnailSuffix is inserted between the source key's base name and its
// extension.
const thumbnailSuffix = "_thumbnail"

// DestinationKey derives the thumbnail key from the source object key:
// "photos/cat.png" becomes "photos/cat_thumbnail.png", and a key without
// an extension gets the suffix appended as-is.
//
// The destination key keeps the source extension even though the uploaded
// bytes are always JPEG-encoded, so a PNG source produces a .png key with
// JPEG content. Renaming the output would change the public naming
// contract, so the mismatch stands.
func DestinationKey(sourceKey string) string {
	name, ext := splitExt(sourceKey)
	return name + thumbnailSuffix + ext
}

// splitExt splits a key into (name, extension). The extension starts at the
// last dot of the final path element; leading dots of that element never
// start an extension, so dotfiles like "conf/.env" have none.
func splitExt(key string) (string, string) {
	dot := strings.LastIndexByte(key, '.')
	slash := strings.LastIndexByte(key, '/')
	if dot <= slash {
		return key, ""
	}
	for i := slash + 1; i < dot; i++ {
		if key[i] != '.' {
			return key[:dot], key[dot:]
		}
	}
	return key, ""
}
