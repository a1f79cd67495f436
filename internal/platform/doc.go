// Package platform provides cross-platform file permission helpers. On Windows
// the owner-write bit maps onto the FILE_ATTRIBUTE_READONLY attribute, so the
// same calls clear read-only protection there and the write bit elsewhere.
package platform
