// Package source fetches raw card scans from upstream CDNs.
//
// A Source tries a priority-ordered list of named providers and returns the
// bytes of the first one that has the image. A provider legitimately missing
// a card for a given language is a normal outcome, surfaced as ErrNotFound;
// the repair engine records it as a known gap, never as a crash.
//
// Providers are URL templates parameterized by (language, set, number). A
// provider may additionally require its own internal image ID, resolved
// through a catalog lookup (see the catalog subpackage) and substituted for
// the {id} placeholder.
package source
