package errors

import "fmt"

// StorageError represents a failed object storage operation
type StorageError struct {
	Op     string // upload_song, upload_image, presign
	Bucket string
	Key    string
	Cause  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed (bucket: %s, key: %s): %v", e.Op, e.Bucket, e.Key, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
