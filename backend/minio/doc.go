// Package minio provides a docgo Backend backed by MinIO or any
// S3-compatible object store.
//
// Object stores have no file-level fsync, so Flush is a documented no-op:
// durability is whatever the store's PutObject acknowledgement guarantees.
// Rename is emulated with a server-side copy followed by a delete, and
// Append with a read-concatenate-put; both are acceptable for datafiles
// because the persistence layer serializes all writes through a single
// logical queue.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b := miniobackend.NewStore(client, "my-bucket", "collections/")
//	p, err := persistence.New(
//	    persistence.WithFilename("orders.db"),
//	    persistence.WithBackend(b),
//	)
package minio
