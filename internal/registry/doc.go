// Package registry maps operator type identifiers to the factories that
// produce runnable operator instances. A Registry is an explicit object
// owned by the host application; nothing in this package is process-global.
package registry
