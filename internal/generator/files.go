package generator

import (
	"crypto/md5"
	"encoding/hex"
	"iter"
	"path/filepath"
	"strings"

	"github.com/koustreak/graphix/internal/filestore"
)

// files yields the file name and content of every output of a: the
// document first, then the DDL preview when present.
func files(a Artifact) iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		if !yield(a.File, a.HCL) {
			return
		}
		if a.DDL != "" {
			yield(a.SQLFile(), []byte(a.DDL))
		}
	}
}

func contentType(name string) string {
	if filepath.Ext(name) == ".sql" {
		return filestore.ContentTypeSQL
	}
	return filestore.ContentTypeHCL
}

// sameETag reports whether etag is the MD5 of data, which is how S3 tags
// objects uploaded in a single part. Multipart tags never match.
func sameETag(etag string, data []byte) bool {
	sum := md5.Sum(data)
	return strings.Trim(etag, `"`) == hex.EncodeToString(sum[:])
}
