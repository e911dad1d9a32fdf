// Package catalog resolves provider-internal image IDs for cards.
//
// Some CDNs do not address images by (set, number) but by an internal numeric
// ID. The mapping lives either in a MySQL catalog table or in a JSON object
// stored next to the artifacts; the configured source selects which. Both
// implementations satisfy the Lookup interface consumed by the HTTP provider.
package catalog
