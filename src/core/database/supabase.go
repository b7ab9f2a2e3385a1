package database

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage initializes the storage client and bucket name
func SupabaseStorage() (*storage_go.Client, string, error) {
	projectURL := os.Getenv("SUPABASE_URL")
	serviceRoleSecret := os.Getenv("SERVICE_ROLE_SECRET")
	bucketName := os.Getenv("BUCKET_NAME")

	if projectURL == "" || serviceRoleSecret == "" || bucketName == "" {
		return nil, "", errors.New("missing SUPABASE_URL, SERVICE_ROLE_SECRET, or BUCKET_NAME in environment variables")
	}

	storageClient := storage_go.NewClient(projectURL+"/storage/v1", serviceRoleSecret, nil)
	return storageClient, bucketName, nil
}

// DetectContentType sniffs the MIME type from the leading bytes of an object.
func DetectContentType(data []byte) string {
	return http.DetectContentType(data)
}

// UploadFile stores an object at the given path with its sniffed content type
// and returns its public URL. Without the content type the bucket serves
// everything as octet-stream and images stop rendering from the public URL.
func UploadFile(path string, content io.Reader) (string, error) {
	client, bucket, err := SupabaseStorage()
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	contentType := DetectContentType(data)

	options := storage_go.FileOptions{ContentType: &contentType}
	if _, err := client.UploadFile(bucket, path, bytes.NewReader(data), options); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}

	resp := client.GetPublicUrl(bucket, path)
	return resp.SignedURL, nil
}

// DeleteFile removes an object from storage. Missing objects are not an error,
// the record may have been uploaded as an external link only.
func DeleteFile(path string) error {
	if path == "" {
		return nil
	}

	client, bucket, err := SupabaseStorage()
	if err != nil {
		return err
	}

	if _, err := client.RemoveFile(bucket, []string{path}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
