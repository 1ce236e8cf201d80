// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ucmanaged/teamsvoice/cmd/teamsvoice/config"
	"github.com/ucmanaged/teamsvoice/cmd/teamsvoice/gcs"
	"github.com/ucmanaged/teamsvoice/pkg/ux"
)

// uploadPrefix is where archives land inside the bucket.
const uploadPrefix = "teamsvoice-backups"

func runUpload(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	path := args[0]

	bucket := uploadBucket
	if bucket == "" {
		bucket = config.Global.Cloud.Bucket
	}

	client, err := gcs.NewClient(ctx, config.Global.Cloud.ProjectID, bucket, config.Global.Cloud.ServiceAccountKey)
	if err != nil {
		fatal("could not create the storage client", err)
	}
	defer client.Close()

	info, err := os.Stat(path)
	if err != nil {
		fatal("cannot read the upload path", err)
	}

	if info.IsDir() {
		if err := client.UploadDir(ctx, path, uploadPrefix); err != nil {
			fatal("upload failed", err)
		}
		ux.Success("Uploaded " + path + " to gs://" + bucket + "/" + uploadPrefix)
		return
	}

	url, err := client.UploadArchive(ctx, path, uploadPrefix)
	if err != nil {
		fatal("upload failed", err)
	}
	ux.Success("Uploaded " + path + " to " + url)
}
