// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package gcs uploads backup archives to Google Cloud Storage for off-host
// retention.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ucmanaged/teamsvoice/pkg/logging"
)

type Client struct {
	storageClient *storage.Client
	ProjectID     string
	Bucket        string
}

// NewClient builds a storage client. An empty key path falls back to
// application default credentials, which covers workstations with gcloud
// auth and CI service accounts alike.
func NewClient(ctx context.Context, projectID, bucket, saKeyPath string) (*Client, error) {
	if bucket == "" {
		return nil, fmt.Errorf("no GCS bucket configured; set cloud.bucket in the config or TEAMSVOICE_BUCKET")
	}

	var opts []option.ClientOption
	if saKeyPath != "" {
		if _, err := os.Stat(saKeyPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("service account key %s does not exist; check cloud.service_account_key in the config", saKeyPath)
		}
		opts = append(opts, option.WithCredentialsFile(saKeyPath))
	}

	storageClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Client{
		storageClient: storageClient,
		ProjectID:     projectID,
		Bucket:        bucket,
	}, nil
}

// Close releases the underlying storage client.
func (c *Client) Close() error {
	if c.storageClient == nil {
		return nil
	}
	return c.storageClient.Close()
}

// UploadFile copies one local file to the given object path.
func (c *Client) UploadFile(ctx context.Context, localPath, objectPath string) error {
	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open upload source %s: %w", localPath, err)
	}
	defer localFile.Close()

	obj := c.storageClient.Bucket(c.Bucket).Object(objectPath)
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType(localPath)
	writer.CacheControl = "no-cache, no-store, must-revalidate"

	if _, err := io.Copy(writer, localFile); err != nil {
		return fmt.Errorf("write gs://%s/%s from %s: %w", c.Bucket, objectPath, localPath, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize gs://%s/%s: %w", c.Bucket, objectPath, err)
	}

	logging.Info().
		Str("local", localPath).
		Str("object", fmt.Sprintf("gs://%s/%s", c.Bucket, objectPath)).
		Msg("uploaded")
	return nil
}

// UploadArchive uploads one backup archive under the given prefix, keyed by
// its base filename, and returns the resulting object URL.
func (c *Client) UploadArchive(ctx context.Context, localPath, prefix string) (string, error) {
	objectPath := path.Join(prefix, filepath.Base(localPath))
	if err := c.UploadFile(ctx, localPath, objectPath); err != nil {
		return "", err
	}
	return fmt.Sprintf("gs://%s/%s", c.Bucket, objectPath), nil
}

// UploadDir uploads every regular file in a local directory under the given
// prefix. Subdirectories are flattened to their base names, matching how
// backup directories are laid out (flat).
func (c *Client) UploadDir(ctx context.Context, localDir, prefix string) error {
	return filepath.Walk(localDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return c.UploadFile(ctx, p, path.Join(prefix, info.Name()))
		}
		return nil
	})
}

func contentType(localPath string) string {
	if strings.EqualFold(filepath.Ext(localPath), ".zip") {
		return "application/zip"
	}
	return "application/octet-stream"
}
