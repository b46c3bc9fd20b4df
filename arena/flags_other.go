//go:build darwin || freebsd

package arena

// Darwin and FreeBSD lazily back anonymous private mappings without an
// explicit flag.
const mapExtraFlags = 0
