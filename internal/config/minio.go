package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// AttachmentPrefix is the key prefix every uploaded attachment lives under.
const AttachmentPrefix = "attachments/"

func NewMinIOClient(cfg *Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := ensureBucket(ctx, client, cfg.MinIOBucket); err != nil {
		return nil, err
	}
	return client, nil
}

// ensureBucket creates the bucket when missing and opens anonymous reads on the attachment prefix only.
func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		logrus.WithField("bucket", bucket).Info("created attachment bucket")
	}

	policy, err := json.Marshal(publicReadPolicy(bucket, AttachmentPrefix))
	if err != nil {
		return err
	}
	if err := client.SetBucketPolicy(ctx, bucket, string(policy)); err != nil {
		logrus.WithError(err).WithField("bucket", bucket).Warn("failed to set public read policy")
	}
	return nil
}

type policyStatement struct {
	Effect    string   `json:"Effect"`
	Principal string   `json:"Principal"`
	Action    []string `json:"Action"`
	Resource  []string `json:"Resource"`
}

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

func publicReadPolicy(bucket, prefix string) bucketPolicy {
	return bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect:    "Allow",
			Principal: "*",
			Action:    []string{"s3:GetObject"},
			Resource:  []string{"arn:aws:s3:::" + bucket + "/" + prefix + "*"},
		}},
	}
}
