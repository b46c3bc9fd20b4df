//go:build linux

package arena

import "golang.org/x/sys/unix"

// MAP_NORESERVE keeps the kernel from charging the full reservation
// against overcommit accounting; pages are backed on first touch.
const mapExtraFlags = unix.MAP_NORESERVE
