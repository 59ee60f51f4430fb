package publish

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// BlobUploader streams artifacts into an Azure Blob Storage container.
type BlobUploader struct {
	client    *azblob.Client
	container string
	prefix    string
}

// NewBlobUploader builds an uploader for the storage account at accountURL
// (e.g. https://myaccount.blob.core.windows.net) using the default Azure
// credential chain. An optional prefix is prepended to every blob name.
func NewBlobUploader(accountURL, container, prefix string) (*BlobUploader, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving Azure credential: %w", err)
	}
	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client: %w", err)
	}
	return &BlobUploader{client: client, container: container, prefix: prefix}, nil
}

// Upload streams one artifact to the container.
func (u *BlobUploader) Upload(ctx context.Context, name, contentType string, r io.Reader) error {
	_, err := u.client.UploadStream(ctx, u.container, blobName(u.prefix, name), r, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)},
	})
	if err != nil {
		return fmt.Errorf("blob upload %s: %w", name, err)
	}
	return nil
}

func blobName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
