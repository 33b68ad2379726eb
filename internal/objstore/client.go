// Package objstore abstracts the object-storage service behind a small
// client interface so the upload service can be tested without network
// access and swapped between S3-compatible backends.
package objstore

import "context"

// Client uploads raw objects to a bucket.
type Client interface {
	// PutObject writes data under key with the given content type.
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// PutCall records one PutObject invocation on the Recorder.
type PutCall struct {
	Bucket      string
	Key         string
	Size        int
	ContentType string
}

// Recorder is a test Client that records calls instead of uploading.
type Recorder struct {
	Puts []PutCall

	// Err, when set, is returned by every PutObject call.
	Err error
}

func (r *Recorder) PutObject(_ context.Context, bucket, key string, data []byte, contentType string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Puts = append(r.Puts, PutCall{
		Bucket:      bucket,
		Key:         key,
		Size:        len(data),
		ContentType: contentType,
	})
	return nil
}
