package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureImageFetcher downloads images from Azure blob storage. URLs use the
// container as the path and name the blob in the "blob" query parameter.
type AzureImageFetcher struct {
	client   *azblob.Client
	maxBytes int64
}

func NewAzureImageFetcher(accountName, accountKey string, maxBytes int64) (*AzureImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureImageFetcher{client: client, maxBytes: maxBytes}, nil
}

func (s *AzureImageFetcher) FetchImage(ctx context.Context, blobURL string) ([]byte, string, error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid blob URL: %w", err)
	}
	if len(parsedURL.Path) < 2 {
		return nil, "", fmt.Errorf("blob URL names no container")
	}

	containerName := parsedURL.Path[1:] // Remove leading slash
	blobName := parsedURL.Query().Get("blob")
	if blobName == "" {
		return nil, "", fmt.Errorf("blob URL names no blob")
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, "", fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	body, err := io.ReadAll(io.LimitReader(retryReader, s.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading blob: %w", err)
	}
	if int64(len(body)) > s.maxBytes {
		return nil, "", fmt.Errorf("image exceeds the %d byte limit", s.maxBytes)
	}

	contentType := ""
	if downloadResponse.ContentType != nil {
		contentType = *downloadResponse.ContentType
	}
	return body, contentType, nil
}
