// Package imaging provides the image codec of the pipeline: probing, exact
// resizing, band cropping, and encoding to the delivery formats.
//
// Decoding and probing understand WebP, AVIF, PNG, and JPEG, which covers
// both the pipeline's own output and anything the upstream CDNs serve.
// Encoding targets WebP and AVIF.
//
// All operations are pure in-memory transforms: bytes in, bytes (or a decoded
// image) out, no shared state. A corrupt input surfaces as ErrCorrupt so
// callers can treat an undecodable artifact the same way as a missing one.
package imaging
