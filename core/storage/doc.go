// Package storage provides the artifact store of the pipeline.
//
// A Store persists encoded card images under slash-separated object keys (see
// the inventory package for the key layout). Two implementations exist:
//
//   - local: artifacts on the filesystem under a configured root. Writes go
//     to a temporary file in the destination directory and are renamed into
//     place, so readers never observe a half-written artifact.
//   - s3: artifacts in an S3-compatible bucket via the MinIO client. Object
//     puts are atomic on the server side.
//
// The driver is selected by configuration; the rest of the pipeline only sees
// the Store interface.
//
// # Usage
//
//	store, err := storage.NewStore(cfg)
//	ok, err := store.Exists(ctx, "it/swsh1/042.webp")
package storage
